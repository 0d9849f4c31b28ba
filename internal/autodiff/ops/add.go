package ops

// AddOp represents scalar addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type AddOp struct {
	inputs []NodeID // [a, b]
	output NodeID   // a + b
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output NodeID) *AddOp {
	return &AddOp{
		inputs: []NodeID{a, b},
		output: output,
	}
}

// Kind returns KindAdd.
func (op *AddOp) Kind() Kind { return KindAdd }

// Backward computes input gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both inputs.
func (op *AddOp) Backward(outputGrad float64, _ ValueReader) []float64 {
	return []float64{outputGrad, outputGrad}
}

// Inputs returns the input nodes [a, b].
func (op *AddOp) Inputs() []NodeID {
	return op.inputs
}

// Output returns the node a + b.
func (op *AddOp) Output() NodeID {
	return op.output
}

func (op *AddOp) sealed() {}
