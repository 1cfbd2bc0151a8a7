// Package node defines the contract every graph node implements: the
// init/ready/shutdown/update lifecycle, optional update cancellation, and
// type-erased indexed access to a node's typed inputs and outputs.
package node

// UpdateController lets the executor cancel a node's long-running OnUpdate
// call from another goroutine. After Cancel is observed, the node's
// contract is that the in-flight OnUpdate call returns (with or without an
// error) within a bounded, node-defined interval.
type UpdateController interface {
	Cancel()
}

// Node is the interface every unit of computation in a Flow implements.
// Lifecycle hooks and OnUpdate are invoked while the Flow holds the node's
// exclusion lock; they never run concurrently with each other for the same
// node.
type Node interface {
	// OnInit is called once, for every node, before any node is readied.
	OnInit() error
	// OnReady is called once, for every node, after every node has initialized.
	OnReady() error
	// OnShutdown is called once, for every node, after the run loop exits.
	OnShutdown() error
	// OnUpdate is called by the NodeUpdater according to the scheduler's
	// epoch. It may be a no-op.
	OnUpdate() error
	// UpdateController returns a handle the executor can use to cancel a
	// long-running OnUpdate, or nil if the node has none.
	UpdateController() UpdateController
}

// RuntimeConnectable provides type-erased, index-keyed access to a node's
// declared inputs and outputs. Indices are contiguous starting at 0 and
// stable for the node's lifetime. Implementations down-cast the returned
// value to the concrete *edge.Input[T] or *edge.Output[T].
//
// This is the hand-written equivalent of what a derive-macro based on
// struct field annotations would generate in a language with that
// facility; Go has none, so every concrete node implements these two
// methods directly, collecting its Input/Output fields in declaration
// order and dispatching on index.
type RuntimeConnectable interface {
	// InputAt returns the input at index i, or panics naming the node's
	// type and the valid index range if i is out of bounds.
	InputAt(i int) any
	// OutputAt returns the output at index i, or panics naming the node's
	// type and the valid index range if i is out of bounds.
	OutputAt(i int) any
}

// Base is embedded by concrete nodes to get no-op/nil defaults for every
// lifecycle hook, so a node need only override what it uses.
type Base struct{}

func (Base) OnInit() error                      { return nil }
func (Base) OnReady() error                     { return nil }
func (Base) OnShutdown() error                  { return nil }
func (Base) OnUpdate() error                    { return nil }
func (Base) UpdateController() UpdateController { return nil }
