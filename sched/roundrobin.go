package sched

import "time"

// RoundRobin is the default Scheduler: it emits node indices 0, 1, 2, ...,
// NumNodes-1 across one epoch, with no tie-break or priority — exactly
// insertion order for a Flow built with the round-robin default.
type RoundRobin struct {
	cursor int
	start  time.Time
}

// NewRoundRobin creates a RoundRobin scheduler ready for its first epoch.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// RestartEpoch resets the cursor to 0, clears info's epoch duration, and
// records the epoch-start time.
func (r *RoundRobin) RestartEpoch(info *SchedulingInfo) {
	r.cursor = 0
	info.EpochDuration = 0
	r.start = time.Now()
}

// EpochIsOver reports whether the cursor has enumerated every node, and
// writes the elapsed epoch duration into info.
func (r *RoundRobin) EpochIsOver(info *SchedulingInfo) bool {
	info.EpochDuration = time.Since(r.start)
	return r.cursor >= info.NumNodes
}

// NextNodeIdx returns the next index and advances the cursor.
func (r *RoundRobin) NextNodeIdx() int {
	idx := r.cursor
	r.cursor++
	return idx
}

var _ Scheduler = (*RoundRobin)(nil)
