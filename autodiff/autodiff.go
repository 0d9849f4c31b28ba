// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// scalar values.
//
// Arithmetic on Values records a computation graph; Backward walks it from
// an output back to every value that contributed, accumulating gradients.
//
// Example:
//
//	import "github.com/born-ml/scalargrad/autodiff"
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    x := g.Literal(3)
//	    y := g.Literal(4).Mul(x.Pow(5)) // y = 4x⁵
//
//	    y.Backward()
//	    fmt.Println(y.Data(), x.Grad()) // 972 1620
//	}
package autodiff

import (
	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/autodiff/ops"
)

// Graph owns the nodes of a computation and their gradients.
type Graph = autodiff.Graph

// Value is a handle to a scalar node of a Graph.
type Value = autodiff.Value

// NodeID is the stable index of a node in its Graph.
type NodeID = ops.NodeID

// Operation is the record of how a computed node was produced.
type Operation = ops.Operation

// Kind identifies the variant of an Operation.
type Kind = ops.Kind

// Operation kinds.
const (
	KindAdd = ops.KindAdd
	KindSub = ops.KindSub
	KindMul = ops.KindMul
	KindPow = ops.KindPow
	KindNeg = ops.KindNeg
)

// NewGraph creates an empty graph.
//
// Example:
//
//	g := autodiff.NewGraph()
//	a := g.Literal(1)
//	b := a.Add(a)
func NewGraph() *Graph {
	return autodiff.NewGraph()
}

// Backward computes gradients of v with respect to every value it depends on.
func Backward(v Value) {
	v.Backward()
}
