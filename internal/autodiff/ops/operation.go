// Package ops defines the operation records attached to computed scalar nodes.
//
// Each operation implements the Operation interface, which provides:
//   - Inputs: the operand nodes it was built from
//   - Backward: the local gradient contribution for each operand
//
// Supported operations:
//   - AddOp: addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - SubOp: subtraction (d(a-b)/da = 1, d(a-b)/db = -1)
//   - MulOp: multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - PowOp: integer power (d(a^n)/da = n*a^(n-1))
//   - NegOp: negation (d(-a)/da = -1)
package ops

// NodeID is the stable index of a node in its graph.
type NodeID int

// ValueReader gives operations read access to the forward values of nodes.
type ValueReader interface {
	// ValueOf returns the forward value of the node.
	ValueOf(id NodeID) float64
}

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output when it is applied, and
// computes input gradient contributions during the backward pass.
//
// The set of operations is closed: only types in this package implement it.
type Operation interface {
	// Kind identifies the variant.
	Kind() Kind

	// Backward computes the gradient contribution for each input given the
	// output gradient. The returned slice is parallel to Inputs().
	//
	// Contributions are never applied here: the caller adds them to the
	// input gradients one at a time, so an input that appears twice
	// (e.g. a+a) receives both.
	Backward(outputGrad float64, values ValueReader) []float64

	// Inputs returns the operand nodes, in operand order.
	Inputs() []NodeID

	// Output returns the node produced by this operation.
	Output() NodeID

	sealed()
}
