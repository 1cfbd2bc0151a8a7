package exec

import (
	"context"
	"time"

	"github.com/smallnest/flowrs-go/edge"
	"github.com/smallnest/flowrs-go/flog"
	"github.com/smallnest/flowrs-go/flow"
	"github.com/smallnest/flowrs-go/metrics"
	"github.com/smallnest/flowrs-go/sched"
	"github.com/smallnest/flowrs-go/updater"
)

// Executor drives a Flow through its full lifecycle: init, ready, a
// repeating epoch loop dispatched through a Scheduler and a NodeUpdater,
// and shutdown.
type Executor interface {
	// Controller returns the shared handle applications use to query
	// state and request cancellation.
	Controller() *Controller
	// Run executes flow to completion: until ctx is cancelled, the
	// controller's Cancel is called, or an unrecoverable error occurs.
	Run(ctx context.Context, f *flow.Flow, scheduler sched.Scheduler, upd updater.NodeUpdater) error
}

// ExecutorOption configures a StandardExecutor at construction time.
type ExecutorOption func(*StandardExecutor)

// WithLogger overrides the no-op default logger. A nil l keeps the no-op logger.
func WithLogger(l flog.Logger) ExecutorOption {
	return func(e *StandardExecutor) {
		if l == nil {
			l = flog.NoOpLogger{}
		}
		e.log = l
	}
}

// WithMetrics wires an optional Prometheus registry. A nil Registry (the
// default) makes every recorded metric a no-op.
func WithMetrics(r *metrics.Registry) ExecutorOption {
	return func(e *StandardExecutor) { e.metrics = r }
}

// StandardExecutor is the engine's sole Executor implementation: a
// single-goroutine epoch loop that forwards node selection to a Scheduler
// and dispatch to a NodeUpdater, sleeping between epochs per the
// updater's reported SleepMode and waking reactively via a ChangeObserver.
type StandardExecutor struct {
	observer   *edge.ChangeObserver
	controller *Controller
	log        flog.Logger
	metrics    *metrics.Registry
}

// NewStandardExecutor creates an executor parked on observer: Reactive
// sleep mode blocks in observer.WaitForChanges, and the controller's
// Cancel posts a wake through observer.Notifier() to break it out early.
func NewStandardExecutor(observer *edge.ChangeObserver, opts ...ExecutorOption) *StandardExecutor {
	e := &StandardExecutor{
		observer: observer,
		log:      flog.NoOpLogger{},
	}
	e.controller = NewController(observer.Notifier())
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Controller returns the executor's shared ExecutionController handle.
func (e *StandardExecutor) Controller() *Controller {
	return e.controller
}

// Run implements the nine-step lifecycle: init all nodes, ready all
// nodes, loop epochs until cancelled or a node update error is observed,
// cancel every node's UpdateController, close the updater, and shut down
// every node. Init and ready failures short-circuit before the loop and
// before shutdown is attempted; a non-empty set of drained update errors
// aborts the loop but shutdown still runs.
func (e *StandardExecutor) Run(ctx context.Context, f *flow.Flow, scheduler sched.Scheduler, upd updater.NodeUpdater) error {
	// Close is deferred immediately on receipt of upd: every exit path
	// below, including the init/ready short-circuits, must join the
	// updater's workers rather than leaving them blocked in their command
	// queue forever. On the path through the epoch loop the updater is
	// closed before ShutdownAll, and the deferred call is then a no-op.
	closed := false
	closeUpdater := func() {
		if !closed {
			closed = true
			upd.Close()
		}
	}
	defer closeUpdater()

	e.log.Info("executor: initializing %d nodes", f.NumNodes())
	if err := f.InitAll(); err != nil {
		e.log.Error("executor: init failed: %v", err)
		return err
	}

	if err := f.ReadyAll(); err != nil {
		e.log.Error("executor: ready failed: %v", err)
		return err
	}

	e.controller.setState(StateRunning)
	info := sched.NewSchedulingInfo(f.NumNodes())
	controllers := f.UpdateControllers()

	runErr := e.loop(ctx, f, scheduler, upd, info)

	for _, uc := range controllers {
		uc.Cancel()
	}
	closeUpdater()
	e.controller.setState(StateReady)

	if shutdownErr := f.ShutdownAll(); shutdownErr != nil {
		e.log.Error("executor: shutdown failed: %v", shutdownErr)
		if runErr == nil {
			return shutdownErr
		}
	}
	return runErr
}

func (e *StandardExecutor) loop(ctx context.Context, f *flow.Flow, scheduler sched.Scheduler, upd updater.NodeUpdater, info *sched.SchedulingInfo) error {
	for {
		if ctx.Err() != nil || e.controller.CancellationRequested() {
			e.log.Info("executor: cancellation observed, stopping run loop")
			return nil
		}

		e.metrics.IncExecutions()
		scheduler.RestartEpoch(info)
		for !scheduler.EpochIsOver(info) {
			if ctx.Err() != nil || e.controller.CancellationRequested() {
				e.log.Info("executor: cancellation observed, stopping run loop")
				return e.drainErrors(f, upd)
			}
			idx := scheduler.NextNodeIdx()
			id, shared, ok := f.NodeByIndex(idx)
			if !ok {
				continue
			}
			// Description is left nil here and filled in by drainErrors:
			// NodeUpdater only ever needs the id to report a failure, and
			// looking the description up once per drained error (rather
			// than once per dispatched update) avoids a map read on the
			// hot path for nodes that never fail.
			upd.Update(id, shared, nil)
		}

		e.applySleepPolicy(ctx, upd.SleepMode(), info)

		if err := e.drainErrors(f, upd); err != nil {
			return err
		}
	}
}

func (e *StandardExecutor) applySleepPolicy(ctx context.Context, mode updater.SleepMode, info *sched.SchedulingInfo) {
	switch mode.Kind {
	case updater.SleepNone:
		return
	case updater.SleepReactive:
		e.controller.setState(StateSleeping)
		stopWake := context.AfterFunc(ctx, e.observer.Notifier().Notify)
		e.observer.WaitForChanges()
		stopWake()
		e.controller.setState(StateRunning)
	case updater.SleepFixedFrequency:
		target := time.Second / time.Duration(mode.EventsPerSecond)
		if remaining := target - info.EpochDuration; remaining > 0 {
			select {
			case <-time.After(remaining):
			case <-ctx.Done():
			}
		}
	}
}

func (e *StandardExecutor) drainErrors(f *flow.Flow, upd updater.NodeUpdater) error {
	drained := upd.Errors()
	if len(drained) == 0 {
		return nil
	}

	for i := range drained {
		if desc, ok := f.DescriptionByID(drained[i].NodeID); ok {
			drained[i].Description = &desc
		}
	}

	e.log.Error("executor: %d node update(s) failed this epoch", len(drained))
	return &UpdateErrorCollection{Errors: drained}
}

var _ Executor = (*StandardExecutor)(nil)
