// Package autodiff implements reverse-mode automatic differentiation over
// scalar values.
//
// Architecture:
//   - Graph: arena of nodes addressed by stable ids, with gradients stored
//     in a slice parallel to the nodes
//   - Value: handle to a node; operators on Value record new nodes
//   - Operation (package ops): record of how a node was computed, with its
//     local gradient rule
//   - Backward: topological sort from the output, then chain rule from the
//     output back to the leaves, accumulating gradients
//
// Usage:
//
//	g := autodiff.NewGraph()
//	x := g.Literal(3)
//	y := g.Literal(4).Mul(x.Pow(5)) // y = 4x⁵
//
//	y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 20x⁴ = 1620
//
// Gradients always accumulate: a node reached through several paths, or
// used twice by one operation, receives the sum of all contributions.
package autodiff
