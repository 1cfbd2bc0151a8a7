package flow

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/smallnest/flowrs-go/node"
)

// NodeId is a stable, monotonically assigned identifier for a node within
// a Flow: unique, never reused, and 128 bits wide — realized as uuid.UUID,
// generated with the time-ordered uuid.NewV7() at insertion time unless
// the caller supplies one.
type NodeId = uuid.UUID

// SharedNode is a node behind a single-writer exclusion lock: the Flow
// retains ownership while update workers hold their own reference to this
// wrapper, so a non-blocking TryLock lets a worker skip a contended node
// rather than convoy behind a long-running update.
type SharedNode struct {
	mu   sync.Mutex
	Node node.Node
}

func newSharedNode(n node.Node) *SharedNode {
	return &SharedNode{Node: n}
}

// TryLock attempts to acquire the node's exclusion lock without blocking.
func (s *SharedNode) TryLock() bool {
	return s.mu.TryLock()
}

// Lock blocks until the node's exclusion lock is acquired.
func (s *SharedNode) Lock() {
	s.mu.Lock()
}

// Unlock releases the node's exclusion lock.
func (s *SharedNode) Unlock() {
	s.mu.Unlock()
}

type entry struct {
	id     NodeId
	shared *SharedNode
}

// LifecycleError wraps an error returned from a node's lifecycle hook with
// the id of the node that produced it.
type LifecycleError struct {
	NodeID NodeId
	Err    error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("node %s: %v", e.NodeID, e.Err)
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}

// Flow owns an insertion-ordered sequence of nodes keyed by NodeId, their
// descriptions, and an id-to-index map for O(1) lookup by id.
type Flow struct {
	mu        sync.RWMutex
	nodes     []entry
	idToIndex map[NodeId]int
	idToDesc  map[NodeId]node.Description
}

// New creates an empty Flow.
func New() *Flow {
	return &Flow{
		idToIndex: make(map[NodeId]int),
		idToDesc:  make(map[NodeId]node.Description),
	}
}

// AddNode allocates a fresh NodeId and adds n with an empty Description.
func (f *Flow) AddNode(n node.Node) NodeId {
	return f.AddNodeWithIDAndDescription(n, uuid.Must(uuid.NewV7()), node.Description{})
}

// AddNodeWithID adds n under the caller-supplied id with an empty Description.
func (f *Flow) AddNodeWithID(n node.Node, id NodeId) NodeId {
	return f.AddNodeWithIDAndDescription(n, id, node.Description{})
}

// AddNodeWithIDAndDescription adds n under id with desc. If id is already
// present, the call is a silent no-op — duplicate ids are rejected this
// way for backward compatibility with the reference implementation, not
// reported as an error (see DESIGN.md).
func (f *Flow) AddNodeWithIDAndDescription(n node.Node, id NodeId, desc node.Description) NodeId {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.idToIndex[id]; exists {
		return id
	}

	f.nodes = append(f.nodes, entry{id: id, shared: newSharedNode(n)})
	f.idToIndex[id] = len(f.nodes) - 1
	f.idToDesc[id] = desc
	return id
}

// NodeByIndex returns the (id, shared node) pair at index i, in insertion order.
func (f *Flow) NodeByIndex(i int) (NodeId, *SharedNode, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if i < 0 || i >= len(f.nodes) {
		return NodeId{}, nil, false
	}
	e := f.nodes[i]
	return e.id, e.shared, true
}

// NodeByID returns the (id, shared node) pair for id.
func (f *Flow) NodeByID(id NodeId) (NodeId, *SharedNode, bool) {
	f.mu.RLock()
	idx, ok := f.idToIndex[id]
	f.mu.RUnlock()
	if !ok {
		return NodeId{}, nil, false
	}
	return f.NodeByIndex(idx)
}

// DescriptionByID returns the Description registered for id, if any.
func (f *Flow) DescriptionByID(id NodeId) (node.Description, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	d, ok := f.idToDesc[id]
	return d, ok
}

// NumNodes returns the number of nodes currently in the Flow.
func (f *Flow) NumNodes() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.nodes)
}

// InitAll calls OnInit on every node in insertion order, stopping at and
// returning the first failure wrapped in a LifecycleError tagged with
// node.ErrInitFailed.
func (f *Flow) InitAll() error {
	return f.forEach(node.ErrInitFailed, func(n node.Node) error { return n.OnInit() })
}

// ReadyAll calls OnReady on every node in insertion order, stopping at and
// returning the first failure wrapped in a LifecycleError tagged with
// node.ErrReadyFailed.
func (f *Flow) ReadyAll() error {
	return f.forEach(node.ErrReadyFailed, func(n node.Node) error { return n.OnReady() })
}

// ShutdownAll calls OnShutdown on every node in insertion order, stopping
// at and returning the first failure wrapped in a LifecycleError tagged
// with node.ErrShutdownFailed.
func (f *Flow) ShutdownAll() error {
	return f.forEach(node.ErrShutdownFailed, func(n node.Node) error { return n.OnShutdown() })
}

// forEach tags each hook failure with kind so errors.Is can tell an init
// failure from a ready or shutdown failure, not just recover the raw
// cause the node returned.
func (f *Flow) forEach(kind error, hook func(node.Node) error) error {
	f.mu.RLock()
	entries := make([]entry, len(f.nodes))
	copy(entries, f.nodes)
	f.mu.RUnlock()

	for _, e := range entries {
		e.shared.Lock()
		err := hook(e.shared.Node)
		e.shared.Unlock()
		if err != nil {
			return &LifecycleError{NodeID: e.id, Err: fmt.Errorf("%w: %w", kind, err)}
		}
	}
	return nil
}

// UpdateControllers returns every node's non-nil UpdateController, in
// insertion order, for the executor to cancel after its main loop exits.
func (f *Flow) UpdateControllers() []node.UpdateController {
	f.mu.RLock()
	entries := make([]entry, len(f.nodes))
	copy(entries, f.nodes)
	f.mu.RUnlock()

	controllers := make([]node.UpdateController, 0, len(entries))
	for _, e := range entries {
		e.shared.Lock()
		uc := e.shared.Node.UpdateController()
		e.shared.Unlock()
		if uc != nil {
			controllers = append(controllers, uc)
		}
	}
	return controllers
}
