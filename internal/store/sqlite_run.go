package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/teller/internal/constants"
)

const runColumns = `id, started_at, finished_at, ledger_path, producers, consumers,
	capacity, accounts, entries, succeeded, failed`

// CreateRun inserts a run with its audit events and final balances in one
// database transaction. A run without an ID gets a fresh UUID.
func (s *Store) CreateRun(run Run, events []Event, balances []Balance) (string, error) {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return "", fmt.Errorf("CreateRun cannot be called within an existing transaction")
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	dbTx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to start database transaction : %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.Exec(`
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		run.ID, run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(), run.LedgerPath,
		run.Producers, run.Consumers, run.Capacity, run.Accounts,
		run.Entries, run.Succeeded, run.Failed,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", fmt.Errorf("%w: run %s already exists", ErrConstraintViolation, run.ID)
		}
		return "", fmt.Errorf("failed to insert run : %w", err)
	}

	stmtEvent, err := dbTx.Prepare(`
		INSERT INTO run_events (run_id, seq, message, ok)
		VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare event SQL : %w", err)
	}
	defer stmtEvent.Close()

	for i, ev := range events {
		if _, err := stmtEvent.Exec(run.ID, i, ev.Message, ev.OK); err != nil {
			return "", fmt.Errorf("failed to insert event %d : %w", i, err)
		}
	}

	stmtBalance, err := dbTx.Prepare(`
		INSERT INTO run_balances (run_id, account_id, balance)
		VALUES (?, ?, ?);
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare balance SQL : %w", err)
	}
	defer stmtBalance.Close()

	for _, bal := range balances {
		if _, err := stmtBalance.Exec(run.ID, bal.AccountID, bal.Balance); err != nil {
			return "", fmt.Errorf("failed to insert balance for account %d : %w", bal.AccountID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return "", err
	}

	return run.ID, nil
}

// GetRun finds a run by its full ID or by a unique ID prefix.
func (s *Store) GetRun(idOrPrefix string) (*Run, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, fmt.Errorf("%w: empty run id", ErrRecordNotFound)
	}

	rows, err := s.db.Query(`
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ? OR id LIKE ? || '%'
		ORDER BY id
		LIMIT 2
	`, idOrPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to query run '%s': %w", idOrPrefix, err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if run.ID == idOrPrefix {
			return run, nil
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: run '%s'", ErrRecordNotFound, idOrPrefix)
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrAmbiguousID, idOrPrefix)
	}
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}

	rows, err := s.db.Query(`
		SELECT `+runColumns+`
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteAllRuns removes every run; events and balances cascade.
func (s *Store) DeleteAllRuns() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}
	return res.RowsAffected()
}

// GetRunEvents returns up to limit events of a run in recorded order.
// A limit <= 0 returns all of them.
func (s *Store) GetRunEvents(runID string, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := s.db.Query(`
		SELECT run_id, seq, message, ok
		FROM run_events
		WHERE run_id = ?
		ORDER BY seq
		LIMIT ?
	`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		ev := &Event{}
		if err := rows.Scan(&ev.RunID, &ev.Seq, &ev.Message, &ev.OK); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

func (s *Store) GetRunBalances(runID string) ([]*Balance, error) {
	rows, err := s.db.Query(`
		SELECT run_id, account_id, balance
		FROM run_balances
		WHERE run_id = ?
		ORDER BY account_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	var balances []*Balance
	for rows.Next() {
		bal := &Balance{}
		if err := rows.Scan(&bal.RunID, &bal.AccountID, &bal.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, bal)
	}

	return balances, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	run := &Run{}
	var started, finished int64

	err := row.Scan(
		&run.ID, &started, &finished, &run.LedgerPath,
		&run.Producers, &run.Consumers, &run.Capacity, &run.Accounts,
		&run.Entries, &run.Succeeded, &run.Failed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.StartedAt = time.UnixMilli(started)
	run.FinishedAt = time.UnixMilli(finished)
	return run, nil
}
