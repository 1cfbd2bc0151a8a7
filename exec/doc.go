// Package exec implements the executor: the component that drives a Flow
// through init, ready, a repeating epoch loop, and shutdown, coordinating
// a Scheduler and a NodeUpdater and honouring cooperative cancellation
// from an ExecutionController.
package exec
