// Package flowrsgo is a dataflow graph execution engine.
//
// A flowrs-go application builds a directed graph of nodes connected by
// typed edges, picks a scheduling policy and a node-update strategy, and
// hands the result to an executor. The executor drives every node through
// an init -> ready -> update (repeatedly) -> shutdown lifecycle, moving
// values along edges, until cancelled.
//
// # Quick Start
//
//	go get github.com/smallnest/flowrs-go
//
//	observer := edge.NewChangeObserver()
//	f := flow.New()
//	f.AddNode(mySource)
//	f.AddNode(myAdd)
//
//	ex := exec.NewStandardExecutor(observer)
//	sch := sched.NewRoundRobin()
//	up := updater.NewMultiThreadedNodeUpdater(2)
//
//	err := ex.Run(context.Background(), f, sch, up)
//
// # Package Structure
//
//   - edge:    typed point-to-point channels (Edge/Input/Output) and the
//     ChangeObserver used to wake a sleeping executor.
//   - node:    the Node lifecycle interface, RuntimeConnectable type-erased
//     indexed access, and NodeDescription metadata.
//   - flow:    Flow, the container owning nodes keyed by a stable NodeId.
//   - sched:   the Scheduler interface and the round-robin default.
//   - updater: the NodeUpdater interface, single-threaded and
//     worker-pool implementations.
//   - exec:    the Executor, ExecutionController and ExecutionState that
//     drive epochs, sleep, cancellation and error aggregation.
//   - flog:    the ambient leveled-logging facade used across the engine.
//   - metrics: optional Prometheus counters/histograms, inert when unset.
//
// Concrete node implementations, graph serialization/authoring, and code
// generation for RuntimeConnectable are outside this module's scope; see
// internal/testnodes for the minimal fixtures this module's own tests use.
package flowrsgo // import "github.com/smallnest/flowrs-go"
