package expr

import (
	"slices"
	"strconv"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/autodiff/ops"
	"github.com/pkg/errors"
)

// Node is a parsed expression.
type Node interface {
	// Build records the expression on g, reading variables from vars.
	// Every occurrence of a variable uses the same Value, so its gradient
	// accumulates over all of them.
	Build(g *autodiff.Graph, vars map[string]autodiff.Value) (autodiff.Value, error)

	// Pos is the byte offset of the node in the source.
	Pos() int

	// String renders the expression fully parenthesized.
	String() string
}

// Number is a numeric literal.
type Number struct {
	Offset int
	Value  float64
}

// Ident is a variable reference.
type Ident struct {
	Offset int
	Name   string
}

// Neg is unary negation.
type Neg struct {
	Offset int
	X      Node
}

// Binary is an infix operation: Add, Sub or Mul.
type Binary struct {
	Offset int
	Op     ops.Kind
	X, Y   Node
}

// Power raises Base to a constant non-negative integer.
type Power struct {
	Offset   int
	Base     Node
	Exponent uint32
}

func (n *Number) Pos() int { return n.Offset }
func (n *Ident) Pos() int { return n.Offset }
func (n *Neg) Pos() int { return n.Offset }
func (n *Binary) Pos() int { return n.Offset }
func (n *Power) Pos() int { return n.Offset }

func (n *Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *Ident) String() string { return n.Name }
func (n *Neg) String() string { return "(-" + n.X.String() + ")" }
func (n *Binary) String() string {
	return "(" + n.X.String() + " " + n.Op.Symbol() + " " + n.Y.String() + ")"
}
func (n *Power) String() string {
	return "(" + n.Base.String() + "^" + strconv.FormatUint(uint64(n.Exponent), 10) + ")"
}

// Build creates a leaf holding the literal.
func (n *Number) Build(g *autodiff.Graph, _ map[string]autodiff.Value) (autodiff.Value, error) {
	return g.Literal(n.Value), nil
}

// Build returns the bound value.
func (n *Ident) Build(_ *autodiff.Graph, vars map[string]autodiff.Value) (autodiff.Value, error) {
	v, ok := vars[n.Name]
	if !ok {
		return autodiff.Value{}, errors.WithStack(&UnboundError{Name: n.Name, Offset: n.Offset})
	}
	return v, nil
}

// Build records -X.
func (n *Neg) Build(g *autodiff.Graph, vars map[string]autodiff.Value) (autodiff.Value, error) {
	x, err := n.X.Build(g, vars)
	if err != nil {
		return autodiff.Value{}, err
	}
	return x.Neg(), nil
}

// Build records X op Y.
func (n *Binary) Build(g *autodiff.Graph, vars map[string]autodiff.Value) (autodiff.Value, error) {
	x, err := n.X.Build(g, vars)
	if err != nil {
		return autodiff.Value{}, err
	}
	y, err := n.Y.Build(g, vars)
	if err != nil {
		return autodiff.Value{}, err
	}
	switch n.Op {
	case ops.KindAdd:
		return x.Add(y), nil
	case ops.KindSub:
		return x.Sub(y), nil
	case ops.KindMul:
		return x.Mul(y), nil
	default:
		return autodiff.Value{}, errors.Errorf("expr: %s is not a binary operation", n.Op)
	}
}

// Build records Base^Exponent.
func (n *Power) Build(g *autodiff.Graph, vars map[string]autodiff.Value) (autodiff.Value, error) {
	base, err := n.Base.Build(g, vars)
	if err != nil {
		return autodiff.Value{}, err
	}
	return base.Pow(n.Exponent), nil
}

// Variables returns the distinct variable names used by n, sorted.
func Variables(n Node) []string {
	seen := map[string]bool{}
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Ident:
			seen[n.Name] = true
		case *Neg:
			walk(n.X)
		case *Binary:
			walk(n.X)
			walk(n.Y)
		case *Power:
			walk(n.Base)
		}
	}
	walk(n)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
