package testnodes

import (
	"github.com/smallnest/flowrs-go/edge"
	"github.com/smallnest/flowrs-go/node"
)

// Number is the set of types Add can sum.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Add is a two-input, one-output node grounded on the reference
// implementation's AddNode: it waits until a value has arrived on both
// Lhs and Rhs, sums them, and sends the result, then resets to wait for
// the next pair. If the same input produces a second value before its
// pair arrives, OnUpdate returns node.ErrSequence rather than silently
// overwriting the pending value — pairwise semantics requires each side
// to advance in lockstep.
type Add[T Number] struct {
	node.Base
	Lhs    *edge.Input[T]
	Rhs    *edge.Input[T]
	Output *edge.Output[T]

	pendingLhs *T
	pendingRhs *T
}

// NewAdd creates an unconnected Add node. observer may be nil.
func NewAdd[T Number](observer *edge.ChangeObserver) *Add[T] {
	return &Add[T]{
		Lhs:    edge.NewEdge[T](),
		Rhs:    edge.NewEdge[T](),
		Output: edge.NewOutput[T](observer),
	}
}

// OnUpdate drains at most one pending value from each side, pairs them
// once both are present, and sends their sum.
func (n *Add[T]) OnUpdate() error {
	if v, outcome := n.Lhs.TryNext(); outcome == edge.Value {
		if n.pendingLhs != nil {
			return node.ErrSequence
		}
		n.pendingLhs = &v
	} else if outcome == edge.Closed {
		return errReceiveFailed("add")
	}

	if v, outcome := n.Rhs.TryNext(); outcome == edge.Value {
		if n.pendingRhs != nil {
			return node.ErrSequence
		}
		n.pendingRhs = &v
	} else if outcome == edge.Closed {
		return errReceiveFailed("add")
	}

	if n.pendingLhs == nil || n.pendingRhs == nil {
		return nil
	}

	sum := *n.pendingLhs + *n.pendingRhs
	n.pendingLhs = nil
	n.pendingRhs = nil
	return wrapSendError(n.Output.Send(sum))
}

// InputAt returns Lhs at 0, Rhs at 1, panicking otherwise.
func (n *Add[T]) InputAt(i int) any {
	switch i {
	case 0:
		return n.Lhs
	case 1:
		return n.Rhs
	default:
		node.IndexOutOfRange("Add", i, 2)
		return nil
	}
}

// OutputAt returns Output at index 0, panicking otherwise.
func (n *Add[T]) OutputAt(i int) any {
	if i != 0 {
		node.IndexOutOfRange("Add", i, 1)
	}
	return n.Output
}

var (
	_ node.Node               = (*Add[int])(nil)
	_ node.RuntimeConnectable = (*Add[int])(nil)
)
