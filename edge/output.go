package edge

import (
	"fmt"
	"sync"
)

// Output is a handle that may be bound to an Input[T]. Unbound outputs
// swallow data and return ErrSendFailed wrapping ErrUnbound, which most
// nodes may treat as benign. The target is stored behind a mutex because
// multiple goroutines
// may concurrently Send through the same Output (fan-out from one producer
// node to many downstream inputs is not required by the core, but the
// exclusion permits the pattern).
type Output[T any] struct {
	mu       sync.Mutex
	target   *Edge[T]
	notifier *Notifier
}

// NewOutput creates an unbound output. observer may be nil, in which case
// Send never pings a notifier (most useful for tests that poll Input
// directly rather than waiting on an executor).
func NewOutput[T any](observer *ChangeObserver) *Output[T] {
	o := &Output[T]{}
	if observer != nil {
		o.notifier = observer.Notifier()
	}
	return o
}

// Connect binds out to in, replacing any prior target. A prior target
// becomes orphaned once no other reference to it remains. Exactly one
// binding is live per Output at any time.
func Connect[T any](out *Output[T], in *Input[T]) {
	sender := in.Clone()
	out.mu.Lock()
	out.target = sender
	out.mu.Unlock()
}

// Send enqueues v on the bound target, then pings the notifier if one is
// present. It fails with ErrSendFailed, wrapping ErrUnbound if Connect was
// never called or ErrReceiveClosed if the bound input's receiver side has
// since closed. The notification is posted strictly after the value is
// enqueued, so any wake observed by an executor is consistent with at
// least one pending value being present somewhere in the graph.
func (o *Output[T]) Send(v T) error {
	o.mu.Lock()
	target := o.target
	notifier := o.notifier
	o.mu.Unlock()

	if target == nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, ErrUnbound)
	}
	if err := target.Send(v); err != nil {
		return err
	}
	if notifier != nil {
		notifier.Notify()
	}
	return nil
}
