package autodiff

import (
	"github.com/born-ml/scalargrad/internal/autodiff/ops"
	"github.com/gomlx/exceptions"
)

// node is one vertex of the computation graph.
type node struct {
	value float64       // Forward value, fixed at creation
	op    ops.Operation // nil for leaves
}

// Graph is the arena that owns every node of a computation.
//
// Nodes are appended in creation order and addressed by their index
// (ops.NodeID), which never changes. Gradients are kept in a slice parallel
// to the nodes. A node lives as long as its Graph.
//
// Graph records operations while recording is on (the default). With
// recording off, operators still compute values but produce leaves,
// which keeps bookkeeping such as parameter updates out of the graph.
//
// A Graph is not safe for concurrent use.
//
// Usage:
//
//	g := NewGraph()
//	x := g.Literal(3)
//	y := g.Literal(4).Mul(x.Pow(5))
//	y.Backward()
//	fmt.Println(x.Grad()) // 1620
type Graph struct {
	nodes     []node    // Arena, in creation order
	grads     []float64 // Gradient accumulators, parallel to nodes
	recording bool      // Whether operators record operations
}

// NewGraph creates an empty graph that is recording.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make([]node, 0, 64), // Pre-allocate for common case
		grads:     make([]float64, 0, 64),
		recording: true,
	}
}

// Literal creates a new leaf node holding x, with gradient 0.
func (g *Graph) Literal(x float64) Value {
	return g.push(x, nil)
}

// Sum adds all values from left to right. With no values it returns a new
// leaf holding 0.
func (g *Graph) Sum(values ...Value) Value {
	if len(values) == 0 {
		return g.Literal(0)
	}
	acc := values[0]
	g.check(acc)
	for _, v := range values[1:] {
		acc = acc.Add(v)
	}
	return acc
}

// StartRecording enables operation recording.
func (g *Graph) StartRecording() {
	g.recording = true
}

// StopRecording disables operation recording.
func (g *Graph) StopRecording() {
	g.recording = false
}

// IsRecording returns true if operators currently record operations.
func (g *Graph) IsRecording() bool {
	return g.recording
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Node returns a handle to the node with the given id.
func (g *Graph) Node(id ops.NodeID) Value {
	g.checkID(id)
	return Value{graph: g, id: id}
}

// ValueOf returns the forward value of a node (implements ops.ValueReader).
func (g *Graph) ValueOf(id ops.NodeID) float64 {
	g.checkID(id)
	return g.nodes[id].value
}

// GradOf returns the accumulated gradient of a node.
func (g *Graph) GradOf(id ops.NodeID) float64 {
	g.checkID(id)
	return g.grads[id]
}

// ZeroGrad resets every gradient in the graph to 0.
// Backward passes accumulate, so call this between passes over the same graph.
func (g *Graph) ZeroGrad() {
	clear(g.grads)
}

// push appends a node. build, when non-nil, creates the operation record
// for the new node's id; it is skipped while not recording.
func (g *Graph) push(value float64, build func(out ops.NodeID) ops.Operation) Value {
	id := ops.NodeID(len(g.nodes))
	var op ops.Operation
	if build != nil && g.recording {
		op = build(id)
	}
	g.nodes = append(g.nodes, node{value: value, op: op})
	g.grads = append(g.grads, 0)
	return Value{graph: g, id: id}
}

// check panics if v does not belong to g.
func (g *Graph) check(v Value) {
	if v.graph == nil {
		panicUninitialized()
	}
	if v.graph != g {
		exceptions.Panicf("autodiff: cannot combine Value #%d from a different graph", v.id)
	}
	g.checkID(v.id)
}

func (g *Graph) checkID(id ops.NodeID) {
	if id < 0 || int(id) >= len(g.nodes) {
		exceptions.Panicf("autodiff: node id %d out of range (graph has %d nodes)", id, len(g.nodes))
	}
}

func panicUninitialized() {
	exceptions.Panicf("autodiff: use of uninitialized Value (create values with Graph.Literal)")
}
