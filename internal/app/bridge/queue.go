/*
Package bridge implements the ordered, non-blocking queue that connects the connection
manager to its consumer in each direction.

Push never blocks the producer. The consumer either suspends in Pop until an item or
cancellation arrives, or polls with TryPop/Drain after a signal on Ready. Items are
delivered in push order exactly once. A high-watermark cap can be set as a safety net, in
which case the oldest item is dropped to make room; the order of the remaining items is kept.
*/
package bridge

import (
	"context"
	"sync"

	"github.com/eapache/queue"
)

// Queue is a FIFO of T with a non-blocking Push.
type Queue[T any] struct {
	items   *queue.Queue
	limit   int
	dropped uint64
	closed  bool

	// ready holds at most one pending wake-up for the consumer.
	ready chan struct{}

	mu sync.Mutex
}

// NewQueue creates a Queue. A capacity of zero or less means unbounded.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}

	return &Queue[T]{
		items: queue.New(),
		limit: capacity,
		ready: make(chan struct{}, 1),
	}
}

// Push appends v. It never blocks. It returns false, and discards v, if the queue is closed.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	if q.limit > 0 && q.items.Length() >= q.limit {
		q.items.Remove()
		q.dropped++
	}
	q.items.Add(v)

	q.signal()
	return true
}

// TryPop removes and returns the oldest item without waiting.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.popLocked()
}

// Pop waits for the oldest item. It returns false when ctx is done, or when the queue is
// closed and fully drained.
func (q *Queue[T]) Pop(ctx context.Context) (T, bool) {
	for {
		q.mu.Lock()
		if v, ok := q.popLocked(); ok {
			q.mu.Unlock()
			return v, true
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			var zero T
			return zero, false
		}

		select {
		case <-q.ready:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

// Drain removes and returns every queued item in order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]T, 0, q.items.Length())
	for {
		v, ok := q.popLocked()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Ready returns a channel that receives a value after items are pushed or the queue is closed.
// Several pushes may be coalesced into one signal, so the consumer should drain after each one.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.Length()
}

// Dropped returns how many items were discarded because the capacity was reached.
func (q *Queue[T]) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.dropped
}

// Close stops accepting new items. Items already queued can still be popped.
// Closing twice is a no-op.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.signal()
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.closed
}

func (q *Queue[T]) popLocked() (T, bool) {
	if q.items.Length() == 0 {
		var zero T
		return zero, false
	}
	v, _ := q.items.Remove().(T)
	return v, true
}

func (q *Queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
