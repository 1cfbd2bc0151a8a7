package updater

import (
	"sync"
	"time"

	"github.com/smallnest/flowrs-go/flow"
	"github.com/smallnest/flowrs-go/metrics"
	"github.com/smallnest/flowrs-go/node"
)

type workerCommand struct {
	cancel bool
	id     flow.NodeId
	shared *flow.SharedNode
	desc   *node.Description
}

// commandQueue is the unbounded, multi-producer multi-consumer queue
// backing the worker pool: push never blocks, which a fixed-capacity Go
// channel cannot guarantee once it fills, so Update can always return
// immediately regardless of worker load.
type commandQueue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []workerCommand
}

func newCommandQueue() *commandQueue {
	q := &commandQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *commandQueue) push(cmd workerCommand) {
	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()
	q.cond.Signal()
}

// pop blocks until a command is available.
func (q *commandQueue) pop() workerCommand {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	cmd := q.items[0]
	q.items = q.items[1:]
	return cmd
}

// MultiThreadedNodeUpdater owns a fixed pool of worker goroutines draining
// a shared, unbounded command queue. Update pushes a command and returns
// immediately; each worker tries a non-blocking lock acquisition on the
// target node and, if it loses the race, drops the update for this epoch —
// the scheduler revisits every node next epoch, so no retry queue is
// needed.
type MultiThreadedNodeUpdater struct {
	numWorkers int
	commands   *commandQueue
	wg         sync.WaitGroup
	metrics    *metrics.Registry

	mu        sync.Mutex
	errors    []NodeUpdateError
	closeOnce sync.Once
}

// NewMultiThreadedNodeUpdater starts numWorkers worker goroutines.
func NewMultiThreadedNodeUpdater(numWorkers int, opts ...Option) *MultiThreadedNodeUpdater {
	o := resolveOptions(opts)
	u := &MultiThreadedNodeUpdater{
		numWorkers: numWorkers,
		commands:   newCommandQueue(),
		metrics:    o.metrics,
	}
	for i := 0; i < numWorkers; i++ {
		u.wg.Add(1)
		go u.worker()
	}
	return u
}

func (u *MultiThreadedNodeUpdater) worker() {
	defer u.wg.Done()

	for {
		cmd := u.commands.pop()
		if cmd.cancel {
			return
		}

		if !cmd.shared.TryLock() {
			// Another worker currently holds this node's lock; drop the
			// update for this epoch rather than block or requeue.
			continue
		}

		start := time.Now()
		err := cmd.shared.Node.OnUpdate()
		cmd.shared.Unlock()
		u.metrics.ObserveUpdateDuration(cmd.id.String(), kindOf(cmd.desc), time.Since(start))

		if err != nil {
			u.mu.Lock()
			u.errors = append(u.errors, NodeUpdateError{
				Err:         err,
				NodeID:      cmd.id,
				Description: cmd.desc,
			})
			u.mu.Unlock()
		}
	}
}

// Update pushes an update command for the worker pool and returns
// immediately without waiting for it to run.
func (u *MultiThreadedNodeUpdater) Update(id flow.NodeId, shared *flow.SharedNode, desc *node.Description) {
	u.commands.push(workerCommand{id: id, shared: shared, desc: desc})
}

// Errors drains every error posted by workers since the last call.
func (u *MultiThreadedNodeUpdater) Errors() []NodeUpdateError {
	u.mu.Lock()
	defer u.mu.Unlock()
	drained := u.errors
	u.errors = nil
	return drained
}

// SleepMode always reports Reactive: the executor sleeps on the
// ChangeObserver between epochs when using the worker pool.
func (u *MultiThreadedNodeUpdater) SleepMode() SleepMode {
	return SleepMode{Kind: SleepReactive}
}

// Close posts numWorkers cancel commands and joins every worker. Joining
// is not conditional on the command queue being empty: in-flight updates
// complete, but unprocessed UpdateCommands behind the cancels are
// discarded once every worker has observed one.
func (u *MultiThreadedNodeUpdater) Close() {
	u.closeOnce.Do(func() {
		for i := 0; i < u.numWorkers; i++ {
			u.commands.push(workerCommand{cancel: true})
		}
		u.wg.Wait()
	})
}

var _ NodeUpdater = (*MultiThreadedNodeUpdater)(nil)
