// Package metrics provides the engine's optional telemetry hooks: a
// counter of executed epochs and a histogram of per-node update
// durations, both backed by github.com/prometheus/client_golang.
//
// A nil *Registry is a valid, fully inert value — every method is a
// no-op — so applications that don't care about metrics never pay for
// them and never need a conditional nil-check at the call site, matching
// the reference implementation's cfg(feature = "metrics") gate around
// equivalent increment_counter!/histogram! calls in its executor and
// node-updater.
package metrics
