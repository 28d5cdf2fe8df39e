// Package buffer provides a fixed-capacity, blocking FIFO queue shared by
// producer and consumer goroutines.
package buffer

import (
	"errors"
	"fmt"
	"sync"
)

var ErrInvalidCapacity = errors.New("buffer capacity must be at least 1")

// BoundedBuffer is a circular FIFO queue holding at most Cap() items.
// Put blocks while the buffer is full and Take blocks while it is empty;
// both wait on a condition variable rather than spinning.
type BoundedBuffer[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	items []T
	count int
	head  int
	tail  int
}

func New[T any](capacity int) (*BoundedBuffer[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	b := &BoundedBuffer[T]{items: make([]T, capacity)}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)
	return b, nil
}

// Put appends item at the tail, waiting for space if the buffer is full.
func (b *BoundedBuffer[T]) Put(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.count == len(b.items) {
		b.notFull.Wait()
	}

	b.items[b.tail] = item
	b.tail = (b.tail + 1) % len(b.items)
	b.count++

	b.notEmpty.Signal()
}

// Take removes and returns the item at the head, waiting for one to arrive
// if the buffer is empty.
func (b *BoundedBuffer[T]) Take() T {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.count == 0 {
		b.notEmpty.Wait()
	}

	var zero T
	item := b.items[b.head]
	b.items[b.head] = zero
	b.head = (b.head + 1) % len(b.items)
	b.count--

	b.notFull.Signal()
	return item
}

// IsEmpty is a point-in-time snapshot and may be stale by the time the
// caller acts on it.
func (b *BoundedBuffer[T]) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count == 0
}

func (b *BoundedBuffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *BoundedBuffer[T]) Cap() int {
	return len(b.items)
}
