package ops

// MulOp represents scalar multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct {
	inputs []NodeID // [a, b]
	output NodeID   // a * b
}

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output NodeID) *MulOp {
	return &MulOp{
		inputs: []NodeID{a, b},
		output: output,
	}
}

// Kind returns KindMul.
func (op *MulOp) Kind() Kind { return KindMul }

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad float64, values ValueReader) []float64 {
	a, b := op.inputs[0], op.inputs[1]
	return []float64{
		outputGrad * values.ValueOf(b),
		outputGrad * values.ValueOf(a),
	}
}

// Inputs returns the input nodes [a, b].
func (op *MulOp) Inputs() []NodeID {
	return op.inputs
}

// Output returns the node a * b.
func (op *MulOp) Output() NodeID {
	return op.output
}

func (op *MulOp) sealed() {}
