package service

import (
	"github.com/hance08/teller/internal/config"
	"github.com/hance08/teller/internal/metrics"
	"github.com/hance08/teller/internal/store"
)

type Service struct {
	Run     *RunService
	History *HistoryService
	Config  *config.Config
}

// NewService wires the run and history services. repo may be nil when run
// history is disabled; m may be nil when metrics are not collected.
func NewService(repo store.Repository, cfg *config.Config, m *metrics.Metrics) *Service {
	return &Service{
		Run:     NewRunService(repo, cfg, m),
		History: NewHistoryService(repo),
		Config:  cfg,
	}
}
