// Command flowrsctl runs a small demonstration flow end to end and prints
// the result. It exists to give the engine a runnable example outside the
// library's own test suite, not as a graph-authoring tool — loading a
// graph from a serialized description is out of scope for the engine.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/smallnest/flowrs-go/edge"
	"github.com/smallnest/flowrs-go/exec"
	"github.com/smallnest/flowrs-go/flog"
	"github.com/smallnest/flowrs-go/flow"
	"github.com/smallnest/flowrs-go/internal/testnodes"
	"github.com/smallnest/flowrs-go/sched"
	"github.com/smallnest/flowrs-go/updater"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(14)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	boxStyle    = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder())
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	observer := edge.NewChangeObserver()
	f := flow.New()

	lhs := testnodes.NewBasicValue(30, observer)
	rhs := testnodes.NewBasicValue(12, observer)
	add := testnodes.NewAdd[int](observer)
	sink := edge.NewEdge[int]()

	edge.Connect(lhs.Output, add.Lhs)
	edge.Connect(rhs.Output, add.Rhs)
	edge.Connect(add.Output, sink)

	f.AddNode(lhs)
	f.AddNode(rhs)
	f.AddNode(add)

	executor := exec.NewStandardExecutor(observer, exec.WithLogger(flog.NewDefaultLogger(flog.LevelInfo)))
	scheduler := sched.NewRoundRobin()
	nodeUpdater := updater.NewMultiThreadedNodeUpdater(2)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() {
		runDone <- executor.Run(ctx, f, scheduler, nodeUpdater)
	}()

	var result int
	deadline := time.After(2 * time.Second)
poll:
	for {
		select {
		case <-deadline:
			break poll
		default:
			if v, outcome := sink.TryNext(); outcome == edge.Value {
				result = v
				break poll
			}
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	<-runDone

	printSummary(f, result)
	return nil
}

func printSummary(f *flow.Flow, result int) {
	rows := fmt.Sprintf(
		"%s %s\n%s %s",
		labelStyle.Render("nodes"), valueStyle.Render(fmt.Sprintf("%d", f.NumNodes())),
		labelStyle.Render("result"), valueStyle.Render(fmt.Sprintf("%d", result)),
	)
	body := headerStyle.Render("flowrsctl demo run") + "\n\n" + rows
	fmt.Println(boxStyle.Render(body))
}
