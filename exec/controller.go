package exec

import "sync"

// State is the executor's externally visible phase.
type State int

const (
	// StateReady is the initial state, and the state the executor returns
	// to after its run loop exits (whether by cancellation or error).
	StateReady State = iota
	// StateRunning means the executor is actively dispatching updates within an epoch.
	StateRunning
	// StateSleeping means the executor is suspended between epochs, waiting
	// on the ChangeObserver (Reactive sleep mode). A fixed-frequency pacing
	// sleep leaves the state at StateRunning.
	StateSleeping
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateSleeping:
		return "Sleeping"
	default:
		return "Unknown"
	}
}

// notifier is the minimal surface Controller needs from edge.Notifier; the
// indirection keeps Controller constructible in tests without a live
// ChangeObserver.
type notifier interface {
	Notify()
}

// Controller is the external handle an application holds to query an
// Executor's state and request cancellation. It is shared by pointer
// (Go's equivalent of the reference implementation's clone-by-Arc), guards
// its fields under a single mutex, and holds a Notifier clone so that
// Cancel can wake an executor parked in ChangeObserver.WaitForChanges.
type Controller struct {
	mu        sync.Mutex
	state     State
	cancelled bool
	notifier  notifier
}

// NewController creates a Controller in StateReady, wired to wake n when
// Cancel is called while the executor is sleeping. n may be nil, in which
// case Cancel only sets the flag (appropriate for non-Reactive updaters).
func NewController(n notifier) *Controller {
	return &Controller{notifier: n}
}

// Cancel requests that the executor's run loop stop at its next
// opportunity. If the executor is currently Sleeping, a wake is posted so
// it observes the request without waiting for its sleep to elapse.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.cancelled = true
	sleeping := c.state == StateSleeping
	n := c.notifier
	c.mu.Unlock()

	if sleeping && n != nil {
		n.Notify()
	}
}

// State returns the controller's current phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CancellationRequested reports whether Cancel has been called.
func (c *Controller) CancellationRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// setState is called only by the executor driving this controller.
func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
