package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// values is a ValueReader backed by a slice indexed by NodeID.
type values []float64

func (v values) ValueOf(id NodeID) float64 { return v[id] }

func TestAddOp_Backward(t *testing.T) {
	op := NewAddOp(0, 1, 2)
	assert.Equal(t, []float64{2.5, 2.5}, op.Backward(2.5, values{3, 4, 7}))
	assert.Equal(t, []NodeID{0, 1}, op.Inputs())
	assert.Equal(t, NodeID(2), op.Output())
	assert.Equal(t, KindAdd, op.Kind())
}

func TestSubOp_Backward(t *testing.T) {
	op := NewSubOp(1, 0, 2)
	assert.Equal(t, []float64{1.5, -1.5}, op.Backward(1.5, values{3, 4, 1}))
	assert.Equal(t, []NodeID{1, 0}, op.Inputs(), "operand order is kept")
}

func TestMulOp_Backward(t *testing.T) {
	op := NewMulOp(0, 1, 2)
	// d(a*b)/da = b, d(a*b)/db = a
	assert.Equal(t, []float64{2 * 12, 2 * 11}, op.Backward(2, values{11, 12, 132}))

	square := NewMulOp(0, 0, 1)
	assert.Equal(t, []float64{3, 3}, square.Backward(1, values{3, 9}),
		"each occurrence gets its own contribution")
}

func TestPowOp_Backward(t *testing.T) {
	tests := []struct {
		name     string
		exponent uint32
		base     float64
		grad     float64
		want     float64
	}{
		{"zero exponent", 0, 3, 1, 0},
		{"zero exponent at zero", 0, 0, 1, 0},
		{"identity", 1, 3, 2, 2},
		{"square", 2, 3, 1, 6},
		{"fifth power", 5, 3, 4, 4 * 5 * 81},
		{"negative base", 3, -2, 1, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewPowOp(0, tt.exponent, 1)
			got := op.Backward(tt.grad, values{tt.base, 0})
			assert.Equal(t, []float64{tt.want}, got)
			assert.Equal(t, tt.exponent, op.Exponent())
			assert.Equal(t, []NodeID{0}, op.Inputs())
		})
	}
}

func TestNegOp_Backward(t *testing.T) {
	op := NewNegOp(0, 1)
	assert.Equal(t, []float64{-3}, op.Backward(3, values{5, -5}))
	assert.Equal(t, KindNeg, op.Kind())
}

func TestIntPow(t *testing.T) {
	for _, x := range []float64{-2.5, -1, 0, 0.5, 3, 10} {
		for n := uint32(0); n <= 12; n++ {
			assert.InDelta(t, math.Pow(x, float64(n)), IntPow(x, n), 1e-9*math.Max(1, math.Abs(math.Pow(x, float64(n)))),
				"IntPow(%g, %d)", x, n)
		}
	}
	assert.Equal(t, 1.0, IntPow(math.NaN(), 0))
	assert.Equal(t, 972.0, 4*IntPow(3, 5))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Add", KindAdd.String())
	assert.Equal(t, "Pow", KindPow.String())
	assert.Equal(t, "Unknown", Kind(0).String())
	assert.Equal(t, "*", KindMul.Symbol())
	assert.Equal(t, "-", KindNeg.Symbol())
	assert.Equal(t, "?", Kind(99).Symbol())
}

// TestOperation_Sealed checks every variant satisfies Operation.
func TestOperation_Sealed(t *testing.T) {
	all := []Operation{
		NewAddOp(0, 1, 2),
		NewSubOp(0, 1, 2),
		NewMulOp(0, 1, 2),
		NewPowOp(0, 2, 1),
		NewNegOp(0, 1),
	}
	kinds := map[Kind]bool{}
	for _, op := range all {
		kinds[op.Kind()] = true
		assert.Len(t, op.Backward(1, values{1, 2, 3}), len(op.Inputs()))
	}
	assert.Len(t, kinds, 5)
}
