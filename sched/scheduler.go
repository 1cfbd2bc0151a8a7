package sched

import "time"

// SchedulingInfo is per-epoch bookkeeping reset by the scheduler at the
// start of each epoch.
type SchedulingInfo struct {
	// NumNodes is the number of nodes in the flow this epoch iterates over.
	NumNodes int
	// EpochDuration is the duration of the previous epoch, written by
	// EpochIsOver once the epoch has ended.
	EpochDuration time.Duration
	// Priorities is reserved for priority-aware scheduler implementations;
	// RoundRobin does not use it.
	Priorities []int8
}

// NewSchedulingInfo creates the bookkeeping struct for a flow with numNodes nodes.
func NewSchedulingInfo(numNodes int) *SchedulingInfo {
	return &SchedulingInfo{NumNodes: numNodes}
}

// Scheduler emits node indices for the current epoch and signals when the
// epoch is over. The executor contract assumes only these three methods —
// alternate implementations (priority queues, work-stealing) are free to
// use SchedulingInfo.Priorities or their own internal state.
type Scheduler interface {
	// RestartEpoch resets the scheduler's internal cursor and records the epoch-start time.
	RestartEpoch(info *SchedulingInfo)
	// EpochIsOver reports whether every node has been enumerated this
	// epoch, and writes the elapsed epoch duration into info.
	EpochIsOver(info *SchedulingInfo) bool
	// NextNodeIdx returns the next node index to update this epoch.
	NextNodeIdx() int
}
