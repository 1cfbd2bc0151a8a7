package updater

import (
	"fmt"

	"github.com/smallnest/flowrs-go/flow"
	"github.com/smallnest/flowrs-go/node"
)

// SleepKind enumerates how the executor pauses between epochs, implied by
// the updater's kind and configuration.
type SleepKind int

const (
	// SleepNone means the executor never sleeps between epochs.
	SleepNone SleepKind = iota
	// SleepReactive means the executor sleeps on the ChangeObserver.
	SleepReactive
	// SleepFixedFrequency means the executor paces epochs to a target rate.
	SleepFixedFrequency
)

// SleepMode describes the pacing policy a NodeUpdater reports to the
// executor. EventsPerSecond is only meaningful when Kind is
// SleepFixedFrequency.
type SleepMode struct {
	Kind            SleepKind
	EventsPerSecond uint64
}

// NodeUpdateError envelopes an OnUpdate failure with the id and, when
// known, the Description of the node that produced it. The NodeUpdater
// fills in NodeID; the executor enriches Description by looking it up in
// the Flow once the error is drained.
type NodeUpdateError struct {
	Err         error
	NodeID      flow.NodeId
	Description *node.Description
}

func (e *NodeUpdateError) Error() string {
	if e.Description != nil {
		return fmt.Sprintf("node %s (%s): %v", e.NodeID, e.Description.Name, e.Err)
	}
	return fmt.Sprintf("node %s: %v", e.NodeID, e.Err)
}

func (e *NodeUpdateError) Unwrap() error {
	return e.Err
}

// kindOf returns desc.Kind, or "unknown" if desc is nil — the executor
// only attaches a Description once an error is drained, so the common,
// non-failing update path reports metrics against an unknown kind rather
// than paying for a Flow lookup per update.
func kindOf(desc *node.Description) string {
	if desc == nil {
		return "unknown"
	}
	return desc.Kind
}

// NodeUpdater invokes OnUpdate on nodes the executor selects, synchronously
// or via a worker pool, and accumulates any failures for the executor to
// drain at the end of each epoch.
type NodeUpdater interface {
	// Update requests an update of the given node. For
	// SingleThreadedNodeUpdater this runs synchronously before Update
	// returns; for MultiThreadedNodeUpdater it is queued and Update
	// returns immediately.
	Update(id flow.NodeId, shared *flow.SharedNode, desc *node.Description)
	// Errors drains every NodeUpdateError accumulated since the last call.
	Errors() []NodeUpdateError
	// SleepMode reports this updater's pacing policy.
	SleepMode() SleepMode
	// Close is the updater's scoped-resource teardown: it guarantees every
	// outstanding update has either completed or been abandoned before it
	// returns.
	Close()
}
