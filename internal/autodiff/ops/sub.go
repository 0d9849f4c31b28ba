package ops

// SubOp represents scalar subtraction: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type SubOp struct {
	inputs []NodeID // [a, b]
	output NodeID   // a - b
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output NodeID) *SubOp {
	return &SubOp{
		inputs: []NodeID{a, b},
		output: output,
	}
}

// Kind returns KindSub.
func (op *SubOp) Kind() Kind { return KindSub }

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad float64, _ ValueReader) []float64 {
	return []float64{outputGrad, -outputGrad}
}

// Inputs returns the input nodes [a, b].
func (op *SubOp) Inputs() []NodeID {
	return op.inputs
}

// Output returns the node a - b.
func (op *SubOp) Output() NodeID {
	return op.output
}

func (op *SubOp) sealed() {}
