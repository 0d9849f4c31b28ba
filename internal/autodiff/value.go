package autodiff

import (
	"fmt"

	"github.com/born-ml/scalargrad/internal/autodiff/ops"
)

// Value is a handle to a scalar node of a Graph.
//
// Copying a Value aliases the same node: gradients written through one copy
// are visible through every other. Two handles are equal iff they refer to
// the same node of the same graph, regardless of the numbers they hold, so
// Value can be compared with == and used as a map key.
//
// The zero Value is not usable; create values with Graph.Literal.
type Value struct {
	graph *Graph
	id    ops.NodeID
}

// Graph returns the graph owning the node.
func (v Value) Graph() *Graph {
	return v.graph
}

// ID returns the node's index in its graph.
func (v Value) ID() ops.NodeID {
	return v.id
}

// Data returns the forward value of the node.
func (v Value) Data() float64 {
	v.mustValid()
	return v.graph.nodes[v.id].value
}

// Grad returns the gradient accumulated so far.
// It is 0 until a backward pass reaches the node.
func (v Value) Grad() float64 {
	v.mustValid()
	return v.graph.grads[v.id]
}

// SetGrad overwrites the node's gradient. Every handle of the node observes
// the new gradient.
func (v Value) SetGrad(grad float64) {
	v.mustValid()
	v.graph.grads[v.id] = grad
}

// Equal reports whether both handles refer to the same node.
func (v Value) Equal(other Value) bool {
	return v.graph == other.graph && v.id == other.id
}

// Op returns the operation that produced the node, or nil for a leaf.
func (v Value) Op() ops.Operation {
	v.mustValid()
	return v.graph.nodes[v.id].op
}

// IsLeaf returns true if the node carries no operation record.
func (v Value) IsLeaf() bool {
	return v.Op() == nil
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.graph == nil {
		return "Value(<nil>)"
	}
	return fmt.Sprintf("Value(#%d, data=%g, grad=%g)", v.id, v.Data(), v.Grad())
}

// Add returns a new node v + other.
func (v Value) Add(other Value) Value {
	g := v.binary(other)
	return g.push(v.Data()+other.Data(), func(out ops.NodeID) ops.Operation {
		return ops.NewAddOp(v.id, other.id, out)
	})
}

// Sub returns a new node v - other.
func (v Value) Sub(other Value) Value {
	g := v.binary(other)
	return g.push(v.Data()-other.Data(), func(out ops.NodeID) ops.Operation {
		return ops.NewSubOp(v.id, other.id, out)
	})
}

// Mul returns a new node v * other.
func (v Value) Mul(other Value) Value {
	g := v.binary(other)
	return g.push(v.Data()*other.Data(), func(out ops.NodeID) ops.Operation {
		return ops.NewMulOp(v.id, other.id, out)
	})
}

// Pow returns a new node v^exponent. Pow(0) is the constant 1; v still
// takes part in the backward pass and receives a zero contribution.
func (v Value) Pow(exponent uint32) Value {
	v.mustValid()
	return v.graph.push(ops.IntPow(v.Data(), exponent), func(out ops.NodeID) ops.Operation {
		return ops.NewPowOp(v.id, exponent, out)
	})
}

// Square returns v^2.
func (v Value) Square() Value {
	return v.Pow(2)
}

// Neg returns a new node -v.
func (v Value) Neg() Value {
	v.mustValid()
	return v.graph.push(-v.Data(), func(out ops.NodeID) ops.Operation {
		return ops.NewNegOp(v.id, out)
	})
}

func (v Value) mustValid() {
	if v.graph == nil {
		panicUninitialized()
	}
	v.graph.checkID(v.id)
}

// binary validates both operands of a binary operator and returns their graph.
func (v Value) binary(other Value) *Graph {
	v.mustValid()
	v.graph.check(other)
	return v.graph
}
