package bank

import (
	"math"
	"sync"
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBank(t *testing.T, n int, opts ...Option) *Bank {
	t.Helper()
	b, err := New(n, opts...)
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	b := newBank(t, 10)

	snap := b.Snapshot()
	assert.Equal(t, 10, b.Len())
	assert.Len(t, snap.Balances, 10)
	assert.Zero(t, snap.Total())
	assert.Zero(t, snap.Succeeded)
	assert.Zero(t, snap.Failed)

	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, i, b.Account(i).ID())
	}
	assert.Nil(t, b.Account(10))
	assert.Nil(t, b.Account(-1))
}

func TestNewRejectsEmptyBank(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrNoAccounts)
}

func TestLogLines(t *testing.T) {
	want := []string{
		"[ SUCCESS ] TID: 0, LID: 0, Acc: 1 DEPOSIT $100",
		"[ SUCCESS ] TID: 0, LID: 1, Acc: 1 WITHDRAW $50",
		"[ SUCCESS ] TID: 0, LID: 2, Acc: 1 TRANSFER $10 TO Acc: 0",
		"[ FAIL ] TID: 0, LID: 3, Acc: 3 WITHDRAW $100",
		"[ FAIL ] TID: 0, LID: 4, Acc: 6 TRANSFER $200 TO Acc: 7",
	}

	b := newBank(t, 10)

	require.NoError(t, b.Deposit(0, 0, 1, 100))
	assert.Equal(t, int64(100), b.Account(1).Balance())

	require.NoError(t, b.Withdraw(0, 1, 1, 50))
	assert.Equal(t, int64(50), b.Account(1).Balance())

	require.NoError(t, b.Transfer(0, 2, 1, 0, 10))
	assert.Equal(t, int64(40), b.Account(1).Balance())
	assert.Equal(t, int64(10), b.Account(0).Balance())

	assert.ErrorIs(t, b.Withdraw(0, 3, 3, 100), ErrInsufficientFunds)
	assert.Zero(t, b.Account(3).Balance())

	assert.ErrorIs(t, b.Transfer(0, 4, 6, 7, 200), ErrInsufficientFunds)
	assert.Zero(t, b.Account(6).Balance())
	assert.Zero(t, b.Account(7).Balance())

	assert.Equal(t, want, b.AuditLog())

	succeeded, failed := b.Counts()
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 2, failed)
}

func TestWithdrawExactBalance(t *testing.T) {
	b := newBank(t, 2)
	require.NoError(t, b.Deposit(1, 0, 0, 75))
	require.NoError(t, b.Withdraw(1, 1, 0, 75))
	assert.Zero(t, b.Account(0).Balance())
	assert.ErrorIs(t, b.Withdraw(1, 2, 0, 1), ErrInsufficientFunds)
}

func TestDepositOverflowFails(t *testing.T) {
	b := newBank(t, 1)

	require.NoError(t, b.Deposit(0, 0, 0, math.MaxInt64))
	assert.ErrorIs(t, b.Deposit(0, 1, 0, math.MaxInt64), ErrBalanceOverflow)
	assert.ErrorIs(t, b.Deposit(0, 2, 0, 1), ErrBalanceOverflow)
	assert.Equal(t, int64(math.MaxInt64), b.Account(0).Balance())

	snap := b.Snapshot()
	assert.Equal(t, 1, snap.Succeeded)
	assert.Equal(t, 2, snap.Failed)
	assert.Equal(t, "[ FAIL ] TID: 0, LID: 1, Acc: 0 DEPOSIT $9223372036854775807", b.AuditLog()[1])
}

func TestTransferOverflowFails(t *testing.T) {
	b := newBank(t, 2)
	require.NoError(t, b.Deposit(0, 0, 0, 5))
	require.NoError(t, b.Deposit(0, 1, 1, math.MaxInt64-2))

	assert.ErrorIs(t, b.Transfer(0, 2, 0, 1, 5), ErrBalanceOverflow)
	assert.Equal(t, int64(5), b.Account(0).Balance())
	assert.Equal(t, int64(math.MaxInt64-2), b.Account(1).Balance())

	require.NoError(t, b.Transfer(0, 3, 0, 1, 2))
	assert.Equal(t, int64(math.MaxInt64), b.Account(1).Balance())
	assert.Equal(t, "[ FAIL ] TID: 0, LID: 2, Acc: 0 TRANSFER $5 TO Acc: 1", b.AuditLog()[2])
}

func TestTransferToSelfFails(t *testing.T) {
	b := newBank(t, 3)
	require.NoError(t, b.Deposit(0, 0, 2, 500))

	err := b.Transfer(4, 1, 2, 2, 10)
	assert.ErrorIs(t, err, ErrSameAccount)
	assert.Equal(t, int64(500), b.Account(2).Balance())

	log := b.AuditLog()
	assert.Equal(t, "[ FAIL ] TID: 4, LID: 1, Acc: 2 TRANSFER $10 TO Acc: 2", log[len(log)-1])
}

func TestUnknownAccountCountsAsFailure(t *testing.T) {
	b := newBank(t, 2)

	assert.ErrorIs(t, b.Deposit(0, 0, 5, 10), ErrUnknownAccount)
	assert.ErrorIs(t, b.Withdraw(0, 1, -1, 10), ErrUnknownAccount)
	assert.ErrorIs(t, b.Transfer(0, 2, 0, 9, 10), ErrUnknownAccount)

	snap := b.Snapshot()
	assert.Zero(t, snap.Succeeded)
	assert.Equal(t, 3, snap.Failed)
	assert.Equal(t, 3, snap.Logged)
	assert.Equal(t, "[ FAIL ] TID: 0, LID: 0, Acc: 5 DEPOSIT $10", b.AuditLog()[0])
}

func TestObserverSeesOutcomesInOrder(t *testing.T) {
	var got []Outcome
	b := newBank(t, 4, WithObserver(ObserverFunc(func(o Outcome) {
		got = append(got, o)
	})))

	require.NoError(t, b.Deposit(2, 7, 0, 30))
	require.Error(t, b.Transfer(3, 8, 1, 0, 5))

	require.Len(t, got, 2)
	assert.Equal(t, OpDeposit, got[0].Op)
	assert.True(t, got[0].OK)
	assert.Equal(t, 7, got[0].LedgerID)

	assert.Equal(t, OpTransfer, got[1].Op)
	assert.False(t, got[1].OK)
	assert.Equal(t, 1, got[1].Account)
	assert.Equal(t, 0, got[1].Other)
	assert.ErrorIs(t, got[1].Err, ErrInsufficientFunds)
	assert.Equal(t, b.AuditLog()[1], got[1].Message)
}

// Opposite-direction transfers between the same pair must never deadlock.
func TestOppositeTransfersComplete(t *testing.T) {
	b := newBank(t, 2)
	require.NoError(t, b.Deposit(0, 0, 0, 1000))
	require.NoError(t, b.Deposit(0, 1, 1, 1000))

	const n = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_ = b.Transfer(1, i, 0, 1, 3)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_ = b.Transfer(2, i, 1, 0, 2)
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("opposite transfers did not complete")
	}

	snap := b.Snapshot()
	assert.Equal(t, int64(2000), snap.Total())
	assert.Equal(t, 2*n+2, snap.Succeeded+snap.Failed)
	for _, bal := range snap.Balances {
		assert.GreaterOrEqual(t, bal, int64(0))
	}
}

func TestConcurrentDisjointPairs(t *testing.T) {
	b := newBank(t, 6)
	for i := 0; i < 6; i++ {
		require.NoError(t, b.Deposit(0, i, i, 100))
	}

	var wg sync.WaitGroup
	for pair := 0; pair < 3; pair++ {
		src, dest := 2*pair, 2*pair+1
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_ = b.Transfer(src, i, src, dest, 1)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_ = b.Transfer(dest, i, dest, src, 1)
			}
		}()
	}
	wg.Wait()

	snap := b.Snapshot()
	for pair := 0; pair < 3; pair++ {
		assert.Equal(t, int64(200), snap.Balances[2*pair]+snap.Balances[2*pair+1], "pair %d", pair)
	}
}

func TestConcurrentDeposits(t *testing.T) {
	b := newBank(t, 1)

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(workerID int) {
			defer wg.Done()
			_ = b.Deposit(workerID, workerID, 0, 1)
		}(w)
	}
	wg.Wait()

	assert.Equal(t, int64(workers), b.Account(0).Balance())
	succeeded, failed := b.Counts()
	assert.Equal(t, workers, succeeded)
	assert.Zero(t, failed)
}

type randomOp struct {
	Kind   uint8
	Src    uint8
	Dest   uint8
	Amount uint16
}

// TestRandomSequenceMatchesModel replays a generated operation sequence
// against the bank and a plain slice model.
func TestRandomSequenceMatchesModel(t *testing.T) {
	const accounts = 5

	var ops []randomOp
	fuzz.NewWithSeed(377).NilChance(0).NumElements(300, 600).Fuzz(&ops)

	b := newBank(t, accounts)
	model := make([]int64, accounts)
	succeeded, failed := 0, 0

	for i, op := range ops {
		src, dest, amt := int(op.Src%accounts), int(op.Dest%accounts), uint64(op.Amount)
		var err error
		switch op.Kind % 3 {
		case 0:
			err = b.Deposit(0, i, src, amt)
			model[src] += int64(amt)
		case 1:
			err = b.Withdraw(0, i, src, amt)
			if model[src] >= int64(amt) {
				model[src] -= int64(amt)
			}
		case 2:
			err = b.Transfer(0, i, src, dest, amt)
			if src != dest && model[src] >= int64(amt) {
				model[src] -= int64(amt)
				model[dest] += int64(amt)
			}
		}
		if err == nil {
			succeeded++
		} else {
			failed++
		}
	}

	snap := b.Snapshot()
	assert.Equal(t, model, snap.Balances)
	assert.Equal(t, succeeded, snap.Succeeded)
	assert.Equal(t, failed, snap.Failed)
	assert.Equal(t, len(ops), snap.Logged)
}
