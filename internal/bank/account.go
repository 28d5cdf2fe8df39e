package bank

import "sync"

// Account is a single balance guarded by its own lock.
// The balance is only read or written while mu is held.
type Account struct {
	mu      sync.Mutex
	id      int
	balance int64
}

func (a *Account) ID() int {
	return a.id
}

// Balance returns the current balance under the account lock.
func (a *Account) Balance() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}
