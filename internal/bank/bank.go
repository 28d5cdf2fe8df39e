// Package bank holds the fixed set of accounts mutated by the engine's
// consumers. Every account has its own mutex; the aggregate counters and the
// audit log share a separate bank-wide mutex.
package bank

import (
	"fmt"
	"math"
	"sync"
)

// Bank is a fixed-size collection of accounts plus aggregate success/failure
// counters and an append-only audit log.
type Bank struct {
	accounts []*Account

	mu        sync.Mutex
	succeeded int
	failed    int
	audit     []string
	observers []Observer
}

// Snapshot is a consistent copy of all balances and counters.
type Snapshot struct {
	Balances  []int64
	Succeeded int
	Failed    int
	Logged    int
}

// Total returns the sum of all balances in the snapshot.
func (s Snapshot) Total() int64 {
	var sum int64
	for _, b := range s.Balances {
		sum += b
	}
	return sum
}

// New creates a bank with n accounts (ids 0..n-1) at balance 0.
func New(n int, opts ...Option) (*Bank, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoAccounts, n)
	}

	b := &Bank{accounts: make([]*Account, n)}
	for i := range b.accounts {
		b.accounts[i] = &Account{id: i}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Len returns the number of accounts.
func (b *Bank) Len() int {
	return len(b.accounts)
}

// Account returns the account with the given id, or nil if it does not exist.
func (b *Bank) Account(id int) *Account {
	if !b.valid(id) {
		return nil
	}
	return b.accounts[id]
}

func (b *Bank) valid(id int) bool {
	return id >= 0 && id < len(b.accounts)
}

// Deposit adds amount to the account. It fails when the account does not
// exist or the new balance would not fit in an int64.
func (b *Bank) Deposit(workerID, ledgerID, accountID int, amount uint64) error {
	out := Outcome{Op: OpDeposit, WorkerID: workerID, LedgerID: ledgerID, Account: accountID, Amount: amount}
	if !b.valid(accountID) {
		out.Err = ErrUnknownAccount
		out.Message = depositMsg(failPrefix, workerID, ledgerID, accountID, amount)
		b.recordFailure(out)
		return out.Err
	}

	acc := b.accounts[accountID]
	acc.mu.Lock()
	defer acc.mu.Unlock()

	if !fits(acc.balance, amount) {
		out.Err = ErrBalanceOverflow
		out.Message = depositMsg(failPrefix, workerID, ledgerID, accountID, amount)
		b.recordFailure(out)
		return out.Err
	}

	acc.balance += int64(amount)
	out.OK = true
	out.Message = depositMsg(successPrefix, workerID, ledgerID, accountID, amount)
	b.recordSuccess(out)
	return nil
}

// Withdraw removes amount from the account if the balance covers it.
// Otherwise the balance is left unchanged and ErrInsufficientFunds is
// returned.
func (b *Bank) Withdraw(workerID, ledgerID, accountID int, amount uint64) error {
	out := Outcome{Op: OpWithdraw, WorkerID: workerID, LedgerID: ledgerID, Account: accountID, Amount: amount}
	if !b.valid(accountID) {
		out.Err = ErrUnknownAccount
		out.Message = withdrawMsg(failPrefix, workerID, ledgerID, accountID, amount)
		b.recordFailure(out)
		return out.Err
	}

	acc := b.accounts[accountID]
	acc.mu.Lock()
	defer acc.mu.Unlock()

	if !covers(acc.balance, amount) {
		out.Err = ErrInsufficientFunds
		out.Message = withdrawMsg(failPrefix, workerID, ledgerID, accountID, amount)
		b.recordFailure(out)
		return out.Err
	}

	acc.balance -= int64(amount)
	out.OK = true
	out.Message = withdrawMsg(successPrefix, workerID, ledgerID, accountID, amount)
	b.recordSuccess(out)
	return nil
}

// Transfer moves amount from srcID to destID. Both account locks are taken
// in ascending id order regardless of direction, so two transfers running in
// opposite directions between the same pair cannot deadlock.
func (b *Bank) Transfer(workerID, ledgerID, srcID, destID int, amount uint64) error {
	out := Outcome{Op: OpTransfer, WorkerID: workerID, LedgerID: ledgerID, Account: srcID, Other: destID, Amount: amount}
	failMsg := transferMsg(failPrefix, workerID, ledgerID, srcID, destID, amount)

	if srcID == destID {
		out.Err = ErrSameAccount
		out.Message = failMsg
		b.recordFailure(out)
		return out.Err
	}
	if !b.valid(srcID) || !b.valid(destID) {
		out.Err = ErrUnknownAccount
		out.Message = failMsg
		b.recordFailure(out)
		return out.Err
	}

	src, dest := b.accounts[srcID], b.accounts[destID]
	first, second := src, dest
	if destID < srcID {
		first, second = dest, src
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if !covers(src.balance, amount) {
		out.Err = ErrInsufficientFunds
		out.Message = failMsg
		b.recordFailure(out)
		return out.Err
	}
	if !fits(dest.balance, amount) {
		out.Err = ErrBalanceOverflow
		out.Message = failMsg
		b.recordFailure(out)
		return out.Err
	}

	src.balance -= int64(amount)
	dest.balance += int64(amount)
	out.OK = true
	out.Message = transferMsg(successPrefix, workerID, ledgerID, srcID, destID, amount)
	b.recordSuccess(out)
	return nil
}

// covers reports whether a non-negative balance can pay amount.
func covers(balance int64, amount uint64) bool {
	return balance >= 0 && uint64(balance) >= amount
}

// fits reports whether amount can be credited to a non-negative balance
// without overflowing.
func fits(balance int64, amount uint64) bool {
	return balance >= 0 && amount <= uint64(math.MaxInt64-balance)
}

func (b *Bank) recordSuccess(out Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.succeeded++
	b.appendLocked(out)
}

func (b *Bank) recordFailure(out Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failed++
	b.appendLocked(out)
}

func (b *Bank) appendLocked(out Outcome) {
	b.audit = append(b.audit, out.Message)
	for _, o := range b.observers {
		o.Observe(out)
	}
}

// Snapshot locks every account in ascending id order, then the aggregate
// lock, and copies balances and counters.
func (b *Bank) Snapshot() Snapshot {
	for _, acc := range b.accounts {
		acc.mu.Lock()
	}
	b.mu.Lock()

	s := Snapshot{
		Balances:  make([]int64, len(b.accounts)),
		Succeeded: b.succeeded,
		Failed:    b.failed,
		Logged:    len(b.audit),
	}
	for i, acc := range b.accounts {
		s.Balances[i] = acc.balance
	}

	b.mu.Unlock()
	for i := len(b.accounts) - 1; i >= 0; i-- {
		b.accounts[i].mu.Unlock()
	}
	return s
}

// AuditLog returns a copy of every recorded message in order.
func (b *Bank) AuditLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.audit))
	copy(out, b.audit)
	return out
}

// Counts returns the aggregate success and failure counters.
func (b *Bank) Counts() (succeeded, failed int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.succeeded, b.failed
}
