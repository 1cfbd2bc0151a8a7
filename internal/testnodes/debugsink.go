package testnodes

import (
	"sync"

	"github.com/smallnest/flowrs-go/edge"
	"github.com/smallnest/flowrs-go/node"
)

// DebugSink is a one-input, zero-output node that stores whatever it
// receives, for assertions in callers that want a node rather than
// reading a bare edge.Input directly. Grounded on the reference
// implementation's debug.rs sink, used throughout its own test suite as a
// generic probe node.
type DebugSink[T any] struct {
	node.Base
	Input *edge.Input[T]

	mu       sync.Mutex
	received []T
}

// NewDebugSink creates an unconnected sink.
func NewDebugSink[T any]() *DebugSink[T] {
	return &DebugSink[T]{Input: edge.NewEdge[T]()}
}

// OnUpdate drains every value currently queued on Input.
func (n *DebugSink[T]) OnUpdate() error {
	for {
		v, outcome := n.Input.TryNext()
		switch outcome {
		case edge.Value:
			n.mu.Lock()
			n.received = append(n.received, v)
			n.mu.Unlock()
		case edge.Closed:
			return errReceiveFailed("debug-sink")
		default:
			return nil
		}
	}
}

// Received returns every value observed so far, in arrival order.
func (n *DebugSink[T]) Received() []T {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]T, len(n.received))
	copy(out, n.received)
	return out
}

// InputAt returns Input at index 0, panicking otherwise.
func (n *DebugSink[T]) InputAt(i int) any {
	if i != 0 {
		node.IndexOutOfRange("DebugSink", i, 1)
	}
	return n.Input
}

// OutputAt always panics: DebugSink declares no outputs.
func (n *DebugSink[T]) OutputAt(i int) any {
	node.IndexOutOfRange("DebugSink", i, 0)
	return nil
}

var (
	_ node.Node               = (*DebugSink[int])(nil)
	_ node.RuntimeConnectable = (*DebugSink[int])(nil)
)
