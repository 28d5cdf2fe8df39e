package buffer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	blockWindow = 50 * time.Millisecond
	wakeTimeout = 2 * time.Second
)

func newBuffer[T any](t *testing.T, capacity int) *BoundedBuffer[T] {
	t.Helper()
	b, err := New[T](capacity)
	require.NoError(t, err)
	return b
}

func TestNewRejectsBadCapacity(t *testing.T) {
	for _, c := range []int{0, -3} {
		_, err := New[int](c)
		assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", c)
	}
}

func TestEmptyOnCreate(t *testing.T) {
	b := newBuffer[int](t, 5)
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 5, b.Cap())
}

func TestPutTake(t *testing.T) {
	b := newBuffer[int](t, 5)
	b.Put(0)
	assert.False(t, b.IsEmpty())
	assert.Equal(t, 0, b.Take())
	assert.True(t, b.IsEmpty())
}

func TestFIFOAcrossWraparound(t *testing.T) {
	b := newBuffer[string](t, 3)

	b.Put("a")
	b.Put("b")
	assert.Equal(t, "a", b.Take())
	b.Put("c")
	b.Put("d")
	assert.Equal(t, 3, b.Len())

	assert.Equal(t, "b", b.Take())
	assert.Equal(t, "c", b.Take())
	assert.Equal(t, "d", b.Take())
	assert.True(t, b.IsEmpty())
}

func TestPutBlocksWhenFull(t *testing.T) {
	const capacity = 4
	b := newBuffer[int](t, capacity)

	for i := 0; i < capacity; i++ {
		b.Put(i)
	}
	assert.Equal(t, capacity, b.Len())

	done := make(chan struct{})
	go func() {
		b.Put(capacity)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("put on a full buffer returned without a take")
	case <-time.After(blockWindow):
	}

	assert.Equal(t, 0, b.Take())

	select {
	case <-done:
	case <-time.After(wakeTimeout):
		t.Fatal("blocked put was not woken by take")
	}

	for want := 1; want <= capacity; want++ {
		assert.Equal(t, want, b.Take())
	}
}

func TestTakeBlocksWhenEmpty(t *testing.T) {
	b := newBuffer[int](t, 2)

	got := make(chan int)
	go func() {
		got <- b.Take()
	}()

	select {
	case <-got:
		t.Fatal("take on an empty buffer returned without a put")
	case <-time.After(blockWindow):
	}

	b.Put(42)

	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(wakeTimeout):
		t.Fatal("blocked take was not woken by put")
	}
}

// Every item put by several producers is taken exactly once through a
// capacity-1 buffer.
func TestManyProducersManyConsumers(t *testing.T) {
	const (
		producers = 4
		consumers = 3
		perProd   = 250
		total     = producers * perProd
	)
	b := newBuffer[int](t, 1)

	var (
		mu   sync.Mutex
		seen = make(map[int]int, total)
		wg   sync.WaitGroup
	)

	// consumers split the total between them
	quota := []int{total / consumers, total / consumers, total - 2*(total/consumers)}
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < n; i++ {
				v := b.Take()
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}(quota[c])
	}

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				b.Put(base + i)
			}
		}(p * perProd)
	}

	wg.Wait()

	assert.True(t, b.IsEmpty())
	require.Len(t, seen, total)
	for v, n := range seen {
		assert.Equal(t, 1, n, "item %d", v)
	}
}

func TestSingleProducerOrderPreserved(t *testing.T) {
	b := newBuffer[int](t, 2)
	const n = 100

	go func() {
		for i := 0; i < n; i++ {
			b.Put(i)
		}
	}()

	for want := 0; want < n; want++ {
		assert.Equal(t, want, b.Take())
	}
}
