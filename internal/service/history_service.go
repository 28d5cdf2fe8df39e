package service

import (
	"errors"
	"fmt"

	"github.com/hance08/teller/internal/store"
)

var ErrHistoryDisabled = errors.New("run history is disabled (set history.enabled in the config)")

type HistoryService struct {
	repo store.Repository
}

func NewHistoryService(repo store.Repository) *HistoryService {
	return &HistoryService{repo: repo}
}

// RunDetail is a recorded run with its audit lines and final balances.
type RunDetail struct {
	Run      *store.Run
	Events   []*store.Event
	Balances []*store.Balance
}

func (hs *HistoryService) Enabled() bool {
	return hs.repo != nil
}

func (hs *HistoryService) ListRuns(limit int) ([]*store.Run, error) {
	if hs.repo == nil {
		return nil, ErrHistoryDisabled
	}
	runs, err := hs.repo.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRunDetail looks a run up by ID or unique ID prefix. eventLimit caps the
// number of audit lines returned; <= 0 returns all.
func (hs *HistoryService) GetRunDetail(idOrPrefix string, eventLimit int) (*RunDetail, error) {
	if hs.repo == nil {
		return nil, ErrHistoryDisabled
	}

	run, err := hs.repo.GetRun(idOrPrefix)
	if err != nil {
		return nil, err
	}

	events, err := hs.repo.GetRunEvents(run.ID, eventLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for run %s: %w", run.ID, err)
	}

	balances, err := hs.repo.GetRunBalances(run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances for run %s: %w", run.ID, err)
	}

	return &RunDetail{Run: run, Events: events, Balances: balances}, nil
}

func (hs *HistoryService) Clear() (int64, error) {
	if hs.repo == nil {
		return 0, ErrHistoryDisabled
	}
	return hs.repo.DeleteAllRuns()
}
