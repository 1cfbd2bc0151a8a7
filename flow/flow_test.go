package flow_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/smallnest/flowrs-go/flow"
	"github.com/smallnest/flowrs-go/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNode struct {
	node.Base
	calls      *[]string
	name       string
	failOnInit error
}

func (n *recordingNode) OnInit() error {
	*n.calls = append(*n.calls, n.name+":init")
	return n.failOnInit
}

func (n *recordingNode) OnReady() error {
	*n.calls = append(*n.calls, n.name+":ready")
	return nil
}

func (n *recordingNode) OnShutdown() error {
	*n.calls = append(*n.calls, n.name+":shutdown")
	return nil
}

func TestAddNodeAllocatesIDAndPreservesOrder(t *testing.T) {
	t.Parallel()

	f := flow.New()
	var calls []string

	id1 := f.AddNode(&recordingNode{calls: &calls, name: "a"})
	id2 := f.AddNode(&recordingNode{calls: &calls, name: "b"})

	assert.NotEqual(t, id1, id2)
	require.Equal(t, 2, f.NumNodes())

	gotID, _, ok := f.NodeByIndex(0)
	require.True(t, ok)
	assert.Equal(t, id1, gotID)

	gotID, _, ok = f.NodeByIndex(1)
	require.True(t, ok)
	assert.Equal(t, id2, gotID)
}

func TestDuplicateIDInsertionIsNoOp(t *testing.T) {
	t.Parallel()

	f := flow.New()
	var calls []string
	id := uuid.New()

	f.AddNodeWithID(&recordingNode{calls: &calls, name: "first"}, id)
	f.AddNodeWithID(&recordingNode{calls: &calls, name: "second"}, id)

	require.Equal(t, 1, f.NumNodes())

	_, shared, ok := f.NodeByID(id)
	require.True(t, ok)
	rn := shared.Node.(*recordingNode)
	assert.Equal(t, "first", rn.name)
}

func TestLifecycleOrdering(t *testing.T) {
	t.Parallel()

	f := flow.New()
	var calls []string

	f.AddNode(&recordingNode{calls: &calls, name: "a"})
	f.AddNode(&recordingNode{calls: &calls, name: "b"})

	require.NoError(t, f.InitAll())
	require.NoError(t, f.ReadyAll())
	require.NoError(t, f.ShutdownAll())

	assert.Equal(t, []string{
		"a:init", "b:init",
		"a:ready", "b:ready",
		"a:shutdown", "b:shutdown",
	}, calls)
}

func TestInitFailureStopsAndWraps(t *testing.T) {
	t.Parallel()

	f := flow.New()
	var calls []string
	boom := errors.New("boom")

	id := f.AddNode(&recordingNode{calls: &calls, name: "a", failOnInit: boom})
	f.AddNode(&recordingNode{calls: &calls, name: "b"})

	err := f.InitAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, node.ErrInitFailed)
	assert.NotErrorIs(t, err, node.ErrReadyFailed)

	var lifecycleErr *flow.LifecycleError
	require.ErrorAs(t, err, &lifecycleErr)
	assert.Equal(t, id, lifecycleErr.NodeID)

	assert.Equal(t, []string{"a:init"}, calls, "node b must not be initialized once a fails")
}

func TestDescriptionByID(t *testing.T) {
	t.Parallel()

	f := flow.New()
	desc := node.Description{Name: "adder", Kind: "add", Description: "sums two inputs"}
	id := f.AddNodeWithIDAndDescription(&recordingNode{calls: &[]string{}, name: "a"}, uuid.New(), desc)

	got, ok := f.DescriptionByID(id)
	require.True(t, ok)
	assert.Equal(t, desc, got)

	_, ok = f.DescriptionByID(uuid.New())
	assert.False(t, ok)
}

func TestUpdateControllersCollectsNonNil(t *testing.T) {
	t.Parallel()

	f := flow.New()
	var calls []string
	f.AddNode(&recordingNode{calls: &calls, name: "a"})
	f.AddNode(&recordingNode{calls: &calls, name: "b"})

	controllers := f.UpdateControllers()
	assert.Empty(t, controllers, "recordingNode never returns an UpdateController")
}
