package bank

// Op identifies the kind of bank operation that produced an Outcome.
type Op int

const (
	OpDeposit Op = iota
	OpWithdraw
	OpTransfer
)

func (o Op) String() string {
	switch o {
	case OpDeposit:
		return "deposit"
	case OpWithdraw:
		return "withdraw"
	case OpTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Outcome describes one completed bank operation. Other is only set for
// transfers. Err is nil when OK is true.
type Outcome struct {
	Op       Op
	WorkerID int
	LedgerID int
	Account  int
	Other    int
	Amount   uint64
	OK       bool
	Err      error
	Message  string
}

// Observer receives every outcome in audit-log order. Observe is called with
// the bank's aggregate lock held, so implementations must not call back into
// the Bank.
type Observer interface {
	Observe(Outcome)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Outcome)

func (f ObserverFunc) Observe(o Outcome) {
	f(o)
}

type Option func(*Bank)

// WithObserver registers o to be notified of every recorded outcome.
func WithObserver(o Observer) Option {
	return func(b *Bank) {
		if o != nil {
			b.observers = append(b.observers, o)
		}
	}
}
