package store

type Repository interface {
	// Run Operations
	CreateRun(run Run, events []Event, balances []Balance) (string, error)
	GetRun(idOrPrefix string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)
	DeleteAllRuns() (int64, error)

	// Detail Operations
	GetRunEvents(runID string, limit int) ([]*Event, error)
	GetRunBalances(runID string) ([]*Balance, error)

	Close() error
}
