package store

import "time"

type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	LedgerPath string
	Producers  int
	Consumers  int
	Capacity   int
	Accounts   int
	Entries    int
	Succeeded  int
	Failed     int
}

// Event is one audit-log line of a run, in the order the bank recorded it.
type Event struct {
	RunID   string
	Seq     int
	Message string
	OK      bool
}

// Balance is an account's final balance at the end of a run.
type Balance struct {
	RunID     string
	AccountID int
	Balance   int64
}
