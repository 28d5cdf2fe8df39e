package service

import (
	"time"

	"github.com/hance08/teller/internal/bank"
	"github.com/hance08/teller/internal/engine"
)

// RunRequest describes one invocation of the engine.
type RunRequest struct {
	LedgerPath string
	Engine     engine.Config
	Record     bool

	// OnStart, if set, sees the freshly opened bank before any entry is
	// applied.
	OnStart func(bank.Snapshot)
}

// RunReport is everything the CLI needs to render after a run.
type RunReport struct {
	RunID      string
	LedgerPath string
	Loaded     int
	LoadErr    error
	Stats      engine.Stats
	Snapshot   bank.Snapshot
	StartedAt  time.Time
	FinishedAt time.Time
	RecordErr  error
}

// Truncated reports whether loading stopped at a malformed record.
func (r *RunReport) Truncated() bool {
	return r.LoadErr != nil
}
