package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun(started time.Time) Run {
	return Run{
		StartedAt:  started,
		FinishedAt: started.Add(150 * time.Millisecond),
		LedgerPath: "ledger.txt",
		Producers:  2,
		Consumers:  3,
		Capacity:   4,
		Accounts:   10,
		Entries:    2,
		Succeeded:  1,
		Failed:     1,
	}
}

func TestCreateAndGetRun(t *testing.T) {
	s := newTestStore(t)
	started := time.UnixMilli(1_700_000_000_123)

	events := []Event{
		{Message: "[ SUCCESS ] TID: 0, LID: 0, Acc: 1 DEPOSIT $100", OK: true},
		{Message: "[ FAIL ] TID: 1, LID: 1, Acc: 3 WITHDRAW $100", OK: false},
	}
	balances := []Balance{{AccountID: 0, Balance: 0}, {AccountID: 1, Balance: 100}}

	id, err := s.CreateRun(sampleRun(started), events, balances)
	require.NoError(t, err)
	require.Len(t, id, 36)

	run, err := s.GetRun(id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.True(t, started.Equal(run.StartedAt))
	assert.Equal(t, 150*time.Millisecond, run.FinishedAt.Sub(run.StartedAt))
	assert.Equal(t, 3, run.Consumers)
	assert.Equal(t, 1, run.Failed)

	gotEvents, err := s.GetRunEvents(id, 0)
	require.NoError(t, err)
	require.Len(t, gotEvents, 2)
	assert.Equal(t, 0, gotEvents[0].Seq)
	assert.True(t, gotEvents[0].OK)
	assert.Equal(t, events[1].Message, gotEvents[1].Message)
	assert.False(t, gotEvents[1].OK)

	limited, err := s.GetRunEvents(id, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	gotBalances, err := s.GetRunBalances(id)
	require.NoError(t, err)
	require.Len(t, gotBalances, 2)
	assert.Equal(t, int64(100), gotBalances[1].Balance)
}

func TestGetRunByPrefix(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	r1 := sampleRun(now)
	r1.ID = "aaaa1111-0000-0000-0000-000000000000"
	r2 := sampleRun(now)
	r2.ID = "aaaa2222-0000-0000-0000-000000000000"

	_, err := s.CreateRun(r1, nil, nil)
	require.NoError(t, err)
	_, err = s.CreateRun(r2, nil, nil)
	require.NoError(t, err)

	run, err := s.GetRun("aaaa2")
	require.NoError(t, err)
	assert.Equal(t, r2.ID, run.ID)

	_, err = s.GetRun("aaaa")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = s.GetRun("ffff")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.GetRun(" ")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDuplicateRunID(t *testing.T) {
	s := newTestStore(t)
	r := sampleRun(time.Now())
	r.ID = "dup"

	_, err := s.CreateRun(r, nil, nil)
	require.NoError(t, err)
	_, err = s.CreateRun(r, []Event{{Message: "x"}}, nil)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	events, err := s.GetRunEvents("dup", 0)
	require.NoError(t, err)
	assert.Empty(t, events, "failed insert must roll back")
}

func TestListRunsNewestFirstAndDeleteAll(t *testing.T) {
	s := newTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	for i := 0; i < 3; i++ {
		_, err := s.CreateRun(sampleRun(base.Add(time.Duration(i)*time.Minute)), []Event{{Message: "m", OK: true}}, []Balance{{AccountID: 0}})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))

	all, err := s.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := s.DeleteAllRuns()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err = s.ListRuns(0)
	require.NoError(t, err)
	assert.Empty(t, all)

	events, err := s.GetRunEvents(runs[0].ID, 0)
	require.NoError(t, err)
	assert.Empty(t, events, "events cascade with their run")
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	id, err := s.CreateRun(sampleRun(time.Now()), nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.GetRun(id)
	assert.NoError(t, err)
}
