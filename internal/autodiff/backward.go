package autodiff

import (
	"github.com/born-ml/scalargrad/internal/autodiff/ops"
	"k8s.io/klog/v2"
)

// Backward computes the gradient of v with respect to every node it depends on.
//
// v's gradient is set to 1 (dv/dv) and the gradients of all its ancestors
// accumulate their contributions. Leaf gradients are not reset first, so
// passes from several outputs (or the same output twice) add up on the
// leaves; call Graph.ZeroGrad to start over. Computed nodes reachable from v
// hold the derivative of this pass only.
//
// Example:
//
//	g := NewGraph()
//	a := g.Literal(1)
//	b := a.Add(a)
//	b.Backward()
//	a.Grad() // 2
func (v Value) Backward() {
	v.BackwardWithGrad(1)
}

// BackwardWithGrad is like Backward, but seeds v's gradient with seed
// instead of 1. This chains a backward pass coming from outside the graph.
func (v Value) BackwardWithGrad(seed float64) {
	v.mustValid()
	v.graph.Backward(v.id, seed)
}

// Backward runs the backward pass from root with the given seed gradient.
//
// Algorithm:
//  1. Reset the gradients of every computed node reachable from root, then
//     overwrite root's gradient with seed
//  2. Walk nodes in topological order (consumers before operands)
//  3. For each node with an operation, compute its operand contributions
//     from the node's current gradient
//  4. Add each contribution to its operand's gradient, one operand at a
//     time, so an operand used twice by the same operation gets both
func (g *Graph) Backward(root ops.NodeID, seed float64) {
	order := g.TopoOrder(root)
	g.resetComputedGrads(order)
	g.grads[root] = seed

	applied := 0
	for _, id := range order {
		op := g.nodes[id].op
		if op == nil {
			continue
		}
		contributions := op.Backward(g.grads[id], g)
		g.accumulateGrads(op.Inputs(), contributions)
		applied++
	}

	klog.V(2).Infof("autodiff: backward from node #%d visited %d nodes, applied %d operations",
		root, len(order), applied)
}

// resetComputedGrads zeroes the gradients of the nodes in order that carry
// an operation. A gradient left over from an earlier pass would otherwise be
// pushed to the operands a second time.
func (g *Graph) resetComputedGrads(order []ops.NodeID) {
	for _, id := range order {
		if g.nodes[id].op != nil {
			g.grads[id] = 0
		}
	}
}

// accumulateGrads adds each contribution to the gradient of its input.
func (g *Graph) accumulateGrads(inputs []ops.NodeID, contributions []float64) {
	for j, input := range inputs {
		if j >= len(contributions) {
			break
		}
		g.grads[input] += contributions[j]
	}
}
