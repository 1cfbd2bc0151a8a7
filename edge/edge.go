package edge

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Outcome is the three-way result of a non-blocking receive.
type Outcome int

const (
	// Value means a value was returned.
	Value Outcome = iota
	// EmptyNow means the queue is momentarily empty but senders remain.
	EmptyNow
	// Closed means every sender handle has been closed and the queue is drained.
	Closed
)

func (o Outcome) String() string {
	switch o {
	case Value:
		return "Value"
	case EmptyNow:
		return "EmptyNow"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// sharedQueue is the unbounded FIFO backing an Edge's producer/receiver pair.
// Buffering is unbounded: send never blocks, and a single producer's values
// are delivered in the order they were sent.
type sharedQueue[T any] struct {
	mu            sync.Mutex
	values        []T
	senders       atomic.Int64
	receiverAlive atomic.Bool
}

// Edge is a typed, in-process, one-way FIFO channel. The value returned by
// NewEdge is both the receiver (Input) and the sole initial sender; call
// Clone to obtain additional sender-only handles.
type Edge[T any] struct {
	q *sharedQueue[T]
}

// Input is the receiving endpoint of an Edge: by convention only the node
// that created the edge calls TryNext on it.
type Input[T any] = Edge[T]

// NewEdge creates an Edge with both the receiver and one sender side live.
func NewEdge[T any]() *Edge[T] {
	q := &sharedQueue[T]{}
	q.senders.Store(1)
	q.receiverAlive.Store(true)
	return &Edge[T]{q: q}
}

// Clone returns a new handle sharing the same underlying queue whose
// receiver side is detached — clones are senders only. At most one holder
// may ever read from the shared queue (the original, un-cloned handle).
func (e *Edge[T]) Clone() *Edge[T] {
	e.q.senders.Add(1)
	return &Edge[T]{q: e.q}
}

// Send enqueues v. It fails with ErrSendFailed wrapping ErrReceiveClosed
// if the receiver side has been closed; the value is never enqueued in
// that case, leaving it with the caller rather than discarding it silently.
func (e *Edge[T]) Send(v T) error {
	if !e.q.receiverAlive.Load() {
		return fmt.Errorf("%w: %w", ErrSendFailed, ErrReceiveClosed)
	}
	e.q.mu.Lock()
	e.q.values = append(e.q.values, v)
	e.q.mu.Unlock()
	return nil
}

// TryNext performs a non-blocking receive: Value if a value was waiting,
// EmptyNow if the queue is momentarily empty with senders still live, or
// Closed if every sender handle has closed.
func (e *Edge[T]) TryNext() (T, Outcome) {
	e.q.mu.Lock()
	defer e.q.mu.Unlock()

	if len(e.q.values) > 0 {
		v := e.q.values[0]
		var zero T
		e.q.values[0] = zero
		e.q.values = e.q.values[1:]
		return v, Value
	}

	var zero T
	if e.q.senders.Load() <= 0 {
		return zero, Closed
	}
	return zero, EmptyNow
}

// CloseSender marks this sender handle done. Once every handle obtained
// from NewEdge/Clone has called CloseSender, TryNext reports Closed once
// the queue has drained.
func (e *Edge[T]) CloseSender() {
	e.q.senders.Add(-1)
}

// CloseReceiver marks the receiver side gone; subsequent Send calls on any
// sender handle fail with ErrSendFailed wrapping ErrReceiveClosed.
func (e *Edge[T]) CloseReceiver() {
	e.q.receiverAlive.Store(false)
}
