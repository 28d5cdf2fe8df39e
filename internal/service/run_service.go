package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hance08/teller/internal/bank"
	"github.com/hance08/teller/internal/config"
	"github.com/hance08/teller/internal/engine"
	"github.com/hance08/teller/internal/ledger"
	"github.com/hance08/teller/internal/logx"
	"github.com/hance08/teller/internal/metrics"
	"github.com/hance08/teller/internal/store"
)

type RunService struct {
	repo    store.Repository
	config  *config.Config
	metrics *metrics.Metrics
}

func NewRunService(repo store.Repository, cfg *config.Config, m *metrics.Metrics) *RunService {
	return &RunService{repo: repo, config: cfg, metrics: m}
}

// Execute loads the ledger, runs the engine over a fresh bank and, when
// requested and a repository is configured, records the run. Extra
// observers see every outcome in audit-log order.
//
// Only a ledger that cannot be opened (ledger.ErrSourceUnavailable) or an
// invalid engine configuration is fatal. A malformed record truncates the
// ledger and is reported in RunReport.LoadErr.
func (rs *RunService) Execute(req RunRequest, observers ...bank.Observer) (*RunReport, error) {
	if err := req.Engine.Validate(); err != nil {
		return nil, err
	}

	report := &RunReport{LedgerPath: req.LedgerPath}

	entries := ledger.NewStore()
	n, err := entries.Load(req.LedgerPath)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrMalformedRecord):
		logx.Warn("LEDGER", fmt.Sprintf("loading stopped after %d records: %v", n, err))
		report.LoadErr = err
	default:
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	report.Loaded = n
	logx.Info("LEDGER", fmt.Sprintf("loaded %d records from %s", n, req.LedgerPath))

	recorder := &historyRecorder{}
	opts := []bank.Option{bank.WithObserver(recorder)}
	for _, o := range observers {
		opts = append(opts, bank.WithObserver(o))
	}

	var engineOpts []engine.Option
	if rs.metrics != nil {
		rs.metrics.Loaded(n)
		opts = append(opts, bank.WithObserver(rs.metrics))
		engineOpts = append(engineOpts, engine.WithRecorder(rs.metrics))
	}

	b, err := bank.New(rs.config.Bank.Accounts, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank: %w", err)
	}

	eng, err := engine.New(b, entries, req.Engine, engineOpts...)
	if err != nil {
		return nil, err
	}

	if req.OnStart != nil {
		req.OnStart(b.Snapshot())
	}

	report.StartedAt = time.Now()
	stats, err := eng.Run()
	if err != nil {
		return nil, err
	}
	report.FinishedAt = time.Now()
	report.Stats = stats
	report.Snapshot = b.Snapshot()

	if rs.metrics != nil {
		rs.metrics.Finished(stats.Elapsed)
	}

	if req.Record && rs.repo != nil {
		report.RunID, report.RecordErr = rs.record(req, report, recorder.events)
		if report.RecordErr != nil {
			logx.Error("HISTORY", report.RecordErr)
		}
	}

	return report, nil
}

func (rs *RunService) record(req RunRequest, report *RunReport, events []store.Event) (string, error) {
	balances := make([]store.Balance, len(report.Snapshot.Balances))
	for i, bal := range report.Snapshot.Balances {
		balances[i] = store.Balance{AccountID: i, Balance: bal}
	}

	run := store.Run{
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		LedgerPath: req.LedgerPath,
		Producers:  req.Engine.Producers,
		Consumers:  req.Engine.Consumers,
		Capacity:   req.Engine.Capacity,
		Accounts:   len(report.Snapshot.Balances),
		Entries:    report.Stats.MaxItems,
		Succeeded:  report.Snapshot.Succeeded,
		Failed:     report.Snapshot.Failed,
	}

	id, err := rs.repo.CreateRun(run, events, balances)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// historyRecorder collects outcomes for the history store. The bank calls
// Observe with its aggregate lock held, which serialises appends.
type historyRecorder struct {
	events []store.Event
}

func (h *historyRecorder) Observe(o bank.Outcome) {
	h.events = append(h.events, store.Event{Seq: len(h.events), Message: o.Message, OK: o.OK})
}
