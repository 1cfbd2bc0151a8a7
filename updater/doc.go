// Package updater implements NodeUpdater: the component that actually
// invokes a node's OnUpdate, either synchronously on the executor's own
// goroutine (SingleThreadedNodeUpdater) or via a fixed pool of worker
// goroutines (MultiThreadedNodeUpdater).
//
// A NodeUpdater is a scoped resource: calling Close is a synchronization
// point guaranteeing every outstanding update has either completed or been
// abandoned, standing in for the reference implementation's Drop impl
// (Go has no destructors, so the executor calls Close explicitly once the
// run loop exits).
package updater
