package autodiff

import (
	"slices"

	"github.com/born-ml/scalargrad/internal/autodiff/ops"
)

// frame is a work-stack entry of the depth-first traversal.
type frame struct {
	id       ops.NodeID
	expanded bool // Operands already pushed; append on next pop
}

// TopoOrder returns every node reachable from root, root included, ordered
// so that each node comes before all of its operands: root first, leaves
// last. Each node appears exactly once, however many paths lead to it.
//
// Algorithm:
//  1. Depth-first post-order from root, left operand before right
//  2. Reverse the post-order
//
// The traversal uses an explicit stack, so arbitrarily deep chains do not
// grow the call stack.
func (g *Graph) TopoOrder(root ops.NodeID) []ops.NodeID {
	g.checkID(root)

	visited := make([]bool, len(g.nodes))
	order := make([]ops.NodeID, 0, len(g.nodes))
	stack := []frame{{id: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.expanded {
			order = append(order, top.id)
			continue
		}
		if visited[top.id] {
			continue
		}
		visited[top.id] = true
		stack = append(stack, frame{id: top.id, expanded: true})

		op := g.nodes[top.id].op
		if op == nil {
			continue
		}
		// Push right to left so the left operand is popped first.
		inputs := op.Inputs()
		for i := len(inputs) - 1; i >= 0; i-- {
			if !visited[inputs[i]] {
				stack = append(stack, frame{id: inputs[i]})
			}
		}
	}

	slices.Reverse(order)
	return order
}

// TopoOrder returns handles to every node reachable from v in backward
// processing order. See Graph.TopoOrder.
func (v Value) TopoOrder() []Value {
	v.mustValid()
	ids := v.graph.TopoOrder(v.id)
	values := make([]Value, len(ids))
	for i, id := range ids {
		values[i] = Value{graph: v.graph, id: id}
	}
	return values
}
