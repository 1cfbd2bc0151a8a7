// Package sched defines the Scheduler interface that selects which node
// index is updated next within an epoch, plus the round-robin default
// implementation.
package sched
