// Package ledger parses transaction ledgers and holds the loaded entries
// until producers drain them.
package ledger

import "fmt"

// Mode is the kind of transaction a ledger entry requests.
type Mode int

const (
	Deposit Mode = iota
	Withdraw
	Transfer
)

func (m Mode) String() string {
	switch m {
	case Deposit:
		return "DEPOSIT"
	case Withdraw:
		return "WITHDRAW"
	case Transfer:
		return "TRANSFER"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool {
	return m >= Deposit && m <= Transfer
}

// Entry is one immutable ledger record. Other is only meaningful for
// transfers. ID is assigned sequentially from 0 in file order.
type Entry struct {
	ID      int
	Account int
	Other   int
	Amount  uint64
	Mode    Mode
}
