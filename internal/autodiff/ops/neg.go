package ops

// NegOp represents scalar negation: output = -x.
//
// Backward pass:
//   - d(-x)/dx = -1, so grad_x = -outputGrad
type NegOp struct {
	inputs []NodeID // [x]
	output NodeID   // -x
}

// NewNegOp creates a new NegOp.
func NewNegOp(x, output NodeID) *NegOp {
	return &NegOp{
		inputs: []NodeID{x},
		output: output,
	}
}

// Kind returns KindNeg.
func (op *NegOp) Kind() Kind { return KindNeg }

// Backward flips the sign of the output gradient.
func (op *NegOp) Backward(outputGrad float64, _ ValueReader) []float64 {
	return []float64{-outputGrad}
}

// Inputs returns the input nodes [x].
func (op *NegOp) Inputs() []NodeID {
	return op.inputs
}

// Output returns the node -x.
func (op *NegOp) Output() NodeID {
	return op.output
}

func (op *NegOp) sealed() {}
