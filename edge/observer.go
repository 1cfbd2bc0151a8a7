package edge

// Notifier is the cloneable producer side of a ChangeObserver's wake
// tokens; an Output holds one and pings it after every successful Send.
type Notifier struct {
	ch chan struct{}
}

// Notify deposits a wake token. It never blocks: if a token is already
// pending, the call is a no-op — wakes coalesce, and one observed wake is
// sufficient regardless of how many Notify calls produced it.
func (n *Notifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// ChangeObserver is the single-consumer wake mechanism an Executor uses to
// transition out of Sleeping. Only the Executor should call
// WaitForChanges; Notifier is safe to clone and call from any number of
// goroutines.
type ChangeObserver struct {
	ch chan struct{}
}

// NewChangeObserver creates an observer with no pending wake.
func NewChangeObserver() *ChangeObserver {
	return &ChangeObserver{ch: make(chan struct{}, 1)}
}

// Notifier returns the cloneable producer side.
func (c *ChangeObserver) Notifier() *Notifier {
	return &Notifier{ch: c.ch}
}

// WaitForChanges blocks until at least one token has arrived, then drains
// any additional tokens without blocking. The drain is bounded by tokens
// actually deposited — it returns as soon as the channel reports empty, it
// never spins.
func (c *ChangeObserver) WaitForChanges() {
	<-c.ch
	for {
		select {
		case <-c.ch:
		default:
			return
		}
	}
}
