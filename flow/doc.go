// Package flow implements Flow, the container that owns a graph's nodes
// keyed by a stable NodeId, fans lifecycle calls across them in insertion
// order, and exposes each node's UpdateController for the executor to
// cancel on shutdown.
//
// Nodes are stored behind a per-node exclusion lock so update workers can
// dispatch concurrently while the Flow retains ownership; lifecycle hooks
// and updates are never run concurrently for the same node because the
// executor sequences lifecycle calls before/after the update loop runs.
package flow
