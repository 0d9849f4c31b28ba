package autodiff_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/autodiff/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reachable collects the ids reachable from root by following operands.
func reachable(g *autodiff.Graph, root ops.NodeID) map[ops.NodeID]bool {
	seen := map[ops.NodeID]bool{}
	pending := []ops.NodeID{root}
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		if op := g.Node(id).Op(); op != nil {
			pending = append(pending, op.Inputs()...)
		}
	}
	return seen
}

// assertTopological checks totality and that consumers precede operands.
func assertTopological(t *testing.T, g *autodiff.Graph, root ops.NodeID, order []ops.NodeID) {
	t.Helper()

	position := make(map[ops.NodeID]int, len(order))
	for i, id := range order {
		_, dup := position[id]
		require.False(t, dup, "node #%d appears twice", id)
		position[id] = i
	}

	want := reachable(g, root)
	require.Len(t, order, len(want))
	for id := range want {
		_, ok := position[id]
		require.True(t, ok, "reachable node #%d missing", id)
	}

	require.Equal(t, root, order[0], "root comes first")
	for _, id := range order {
		op := g.Node(id).Op()
		if op == nil {
			continue
		}
		for _, input := range op.Inputs() {
			assert.Less(t, position[id], position[input],
				"consumer #%d must precede operand #%d", id, input)
		}
	}
}

func TestTopoOrder_Chain(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Literal(1)
	b := a.Neg()
	c := b.Pow(2)

	order := c.TopoOrder()
	require.Len(t, order, 3)
	assert.True(t, order[0].Equal(c))
	assert.True(t, order[1].Equal(b))
	assert.True(t, order[2].Equal(a))
}

func TestTopoOrder_SelfReuse(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Literal(1)
	b := a.Add(a)

	order := g.TopoOrder(b.ID())
	assert.Equal(t, []ops.NodeID{b.ID(), a.ID()}, order)
}

func TestTopoOrder_Diamond(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Literal(2)
	left := a.Mul(g.Literal(3))
	right := a.Pow(2)
	top := left.Sub(right)

	order := g.TopoOrder(top.ID())
	assertTopological(t, g, top.ID(), order)
	assert.Equal(t, a.ID(), order[len(order)-1], "shared leaf is processed last")
}

func TestTopoOrder_Deterministic(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Literal(1)
	b := g.Literal(2)
	c := a.Mul(b)
	d := c.Add(a).Sub(b.Neg())

	first := g.TopoOrder(d.ID())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.TopoOrder(d.ID()))
	}
}

func TestTopoOrder_ExcludesUnreachable(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Literal(1)
	_ = g.Literal(2).Add(a)
	b := a.Neg()

	assert.Equal(t, []ops.NodeID{b.ID(), a.ID()}, g.TopoOrder(b.ID()))
}

// TestTopoOrder_RandomDAGs builds random graphs whose operands are drawn
// from earlier nodes and checks the ordering invariants from every node.
func TestTopoOrder_RandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		g := autodiff.NewGraph()
		values := []autodiff.Value{g.Literal(rng.Float64()), g.Literal(rng.Float64())}

		for i := 0; i < 60; i++ {
			pick := func() autodiff.Value { return values[rng.Intn(len(values))] }
			var v autodiff.Value
			switch rng.Intn(6) {
			case 0:
				v = pick().Add(pick())
			case 1:
				v = pick().Sub(pick())
			case 2:
				v = pick().Mul(pick())
			case 3:
				v = pick().Pow(uint32(rng.Intn(4)))
			case 4:
				v = pick().Neg()
			default:
				v = g.Literal(rng.Float64())
			}
			values = append(values, v)
		}

		for _, v := range values {
			assertTopological(t, g, v.ID(), g.TopoOrder(v.ID()))
		}
	}
}

// TestBackward_DeepChain tests a chain far deeper than a recursive
// traversal could comfortably handle.
func TestBackward_DeepChain(t *testing.T) {
	const depth = 200_000

	g := autodiff.NewGraph()
	x := g.Literal(0.5)
	one := g.Literal(1)
	y := x
	for i := 0; i < depth; i++ {
		y = y.Add(one)
	}
	y.Backward()

	assert.Equal(t, 0.5+depth, y.Data())
	assert.Equal(t, 1.0, x.Grad())
	assert.Equal(t, float64(depth), one.Grad())
	assert.Len(t, y.TopoOrder(), depth+2)
}
