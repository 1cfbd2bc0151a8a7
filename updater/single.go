package updater

import (
	"errors"
	"time"

	"github.com/smallnest/flowrs-go/flow"
	"github.com/smallnest/flowrs-go/metrics"
	"github.com/smallnest/flowrs-go/node"
)

// ErrZeroEventsPerSecond is returned by NewSingleThreadedNodeUpdaterWithFrequency when
// asked for a fixed-frequency pacing of zero events per second, which
// would otherwise divide by zero when computing the target epoch duration.
var ErrZeroEventsPerSecond = errors.New("updater: events per second must be > 0")

// SingleThreadedNodeUpdater runs every update synchronously on the
// caller's goroutine — the same goroutine the executor's run loop drives.
// If the node is already held elsewhere (which cannot happen when this
// updater is the only writer, but is checked regardless for uniformity
// with MultiThreadedNodeUpdater) the update is skipped for this epoch, not
// queued.
type SingleThreadedNodeUpdater struct {
	errors  []NodeUpdateError
	eps     *uint64
	metrics *metrics.Registry
}

// Option configures a NodeUpdater at construction time. Both constructors
// below accept it; WithMetrics is currently the only option.
type Option func(*options)

type options struct {
	metrics *metrics.Registry
}

// WithMetrics wires an optional Prometheus registry: each OnUpdate call is
// timed and recorded against the node's id and description kind. A nil
// Registry (the default) makes this entirely inert.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *options) { o.metrics = r }
}

func resolveOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewSingleThreadedNodeUpdater creates an updater with no pacing: the
// executor never sleeps between epochs.
func NewSingleThreadedNodeUpdater(opts ...Option) *SingleThreadedNodeUpdater {
	o := resolveOptions(opts)
	return &SingleThreadedNodeUpdater{metrics: o.metrics}
}

// NewSingleThreadedNodeUpdaterWithFrequency creates an updater that reports
// SleepFixedFrequency(eventsPerSecond) to the executor. It returns
// ErrZeroEventsPerSecond if eventsPerSecond is 0, rejecting the
// division-by-zero case at construction time rather than at sleep time.
func NewSingleThreadedNodeUpdaterWithFrequency(eventsPerSecond uint64, opts ...Option) (*SingleThreadedNodeUpdater, error) {
	if eventsPerSecond == 0 {
		return nil, ErrZeroEventsPerSecond
	}
	o := resolveOptions(opts)
	return &SingleThreadedNodeUpdater{eps: &eventsPerSecond, metrics: o.metrics}, nil
}

// Update runs the node's OnUpdate synchronously. If the node's lock cannot
// be acquired without blocking, the update is skipped this epoch.
func (u *SingleThreadedNodeUpdater) Update(id flow.NodeId, shared *flow.SharedNode, desc *node.Description) {
	if !shared.TryLock() {
		return
	}
	defer shared.Unlock()

	start := time.Now()
	err := shared.Node.OnUpdate()
	u.metrics.ObserveUpdateDuration(id.String(), kindOf(desc), time.Since(start))

	if err != nil {
		u.errors = append(u.errors, NodeUpdateError{
			Err:         err,
			NodeID:      id,
			Description: desc,
		})
	}
}

// Errors drains and clears the accumulated errors.
func (u *SingleThreadedNodeUpdater) Errors() []NodeUpdateError {
	drained := u.errors
	u.errors = nil
	return drained
}

// SleepMode reports FixedFrequency(eps) if configured with one, else None.
func (u *SingleThreadedNodeUpdater) SleepMode() SleepMode {
	if u.eps == nil {
		return SleepMode{Kind: SleepNone}
	}
	return SleepMode{Kind: SleepFixedFrequency, EventsPerSecond: *u.eps}
}

// Close is a no-op: a SingleThreadedNodeUpdater owns no background goroutines.
func (u *SingleThreadedNodeUpdater) Close() {}

var _ NodeUpdater = (*SingleThreadedNodeUpdater)(nil)
