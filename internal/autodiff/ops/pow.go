package ops

// PowOp represents raising a node to a fixed non-negative integer power:
// output = base^exponent.
//
// The exponent is a constant of the operation, not a node, and receives no
// gradient.
//
// Backward pass:
//   - exponent > 0: grad_base = outputGrad * n * base^(n-1)
//   - exponent == 0: the output is the constant 1, grad_base = 0
type PowOp struct {
	inputs   []NodeID // [base]
	exponent uint32
	output   NodeID // base^exponent
}

// NewPowOp creates a new PowOp.
func NewPowOp(base NodeID, exponent uint32, output NodeID) *PowOp {
	return &PowOp{
		inputs:   []NodeID{base},
		exponent: exponent,
		output:   output,
	}
}

// Kind returns KindPow.
func (op *PowOp) Kind() Kind { return KindPow }

// Exponent returns the integer exponent.
func (op *PowOp) Exponent() uint32 {
	return op.exponent
}

// Backward computes the base gradient for the power rule.
func (op *PowOp) Backward(outputGrad float64, values ValueReader) []float64 {
	if op.exponent == 0 {
		return []float64{0}
	}
	base := values.ValueOf(op.inputs[0])
	return []float64{outputGrad * float64(op.exponent) * IntPow(base, op.exponent-1)}
}

// Inputs returns the input nodes [base].
func (op *PowOp) Inputs() []NodeID {
	return op.inputs
}

// Output returns the node base^exponent.
func (op *PowOp) Output() NodeID {
	return op.output
}

func (op *PowOp) sealed() {}

// IntPow computes x^n by repeated squaring. IntPow(x, 0) is 1 for every x,
// including 0 and NaN, matching the convention of math.Pow.
func IntPow(x float64, n uint32) float64 {
	result := 1.0
	for n > 0 {
		if n&1 == 1 {
			result *= x
		}
		x *= x
		n >>= 1
	}
	return result
}
