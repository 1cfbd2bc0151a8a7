package testnodes

import (
	"github.com/smallnest/flowrs-go/edge"
	"github.com/smallnest/flowrs-go/node"
)

// BasicValue is a single-output source: it sends a fixed value exactly
// once, on OnReady, and is otherwise inert. Grounded on the reference
// implementation's BasicNode, which sends its configured props once in
// on_ready and panics out of input_at since it has no inputs.
type BasicValue[T any] struct {
	node.Base
	value  T
	Output *edge.Output[T]
}

// NewBasicValue creates a source node that will send value once OnReady
// runs. observer may be nil if the caller polls downstream inputs
// directly rather than waiting on an executor.
func NewBasicValue[T any](value T, observer *edge.ChangeObserver) *BasicValue[T] {
	return &BasicValue[T]{
		value:  value,
		Output: edge.NewOutput[T](observer),
	}
}

// OnReady sends the configured value to whatever Output is connected.
func (n *BasicValue[T]) OnReady() error {
	return n.Output.Send(n.value)
}

// InputAt always panics: BasicValue declares no inputs.
func (n *BasicValue[T]) InputAt(i int) any {
	node.IndexOutOfRange("BasicValue", i, 0)
	return nil
}

// OutputAt returns Output at index 0, panicking otherwise.
func (n *BasicValue[T]) OutputAt(i int) any {
	if i != 0 {
		node.IndexOutOfRange("BasicValue", i, 1)
	}
	return n.Output
}

var (
	_ node.Node               = (*BasicValue[int])(nil)
	_ node.RuntimeConnectable = (*BasicValue[int])(nil)
)
