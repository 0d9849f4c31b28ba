// Package expr parses arithmetic expressions over named scalar variables and
// records them on an autodiff graph.
//
// Grammar:
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { "*" unary }
//	unary  = "-" unary | power
//	power  = atom [ "^" uint ]
//	atom   = number | ident | "(" expr ")"
//
// Exponents are non-negative integer literals, so "-x^2" is -(x^2) and
// "x^2^3" is rejected.
package expr

import (
	"strconv"
	"strings"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/autodiff/ops"
	"github.com/pkg/errors"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

type parser struct {
	tokens []token
	pos    int
	depth  int
}

// Parse parses src into an expression tree.
func Parse(src string) (Node, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, syntaxErrorf(tok.pos, "unexpected %s after expression", describe(tok))
	}
	return n, nil
}

// Eval parses src, binds every variable to a new leaf holding the value in
// bindings and records the expression on g. It returns the output value and
// the leaves by name.
func Eval(g *autodiff.Graph, src string, bindings map[string]float64) (autodiff.Value, map[string]autodiff.Value, error) {
	n, err := Parse(src)
	if err != nil {
		return autodiff.Value{}, nil, errors.Wrapf(err, "parsing %q", src)
	}
	out, vars, err := EvalNode(g, n, bindings)
	if err != nil {
		return autodiff.Value{}, nil, errors.Wrapf(err, "building %q", src)
	}
	return out, vars, nil
}

// EvalNode is like Eval for an already parsed expression. Leaves are created
// in sorted variable order. Nothing is recorded on g if a variable is unbound.
func EvalNode(g *autodiff.Graph, n Node, bindings map[string]float64) (autodiff.Value, map[string]autodiff.Value, error) {
	names := Variables(n)
	for _, name := range names {
		if _, ok := bindings[name]; !ok {
			return autodiff.Value{}, nil, errors.WithStack(&UnboundError{Name: name, Offset: firstUse(n, name)})
		}
	}
	vars := make(map[string]autodiff.Value, len(names))
	for _, name := range names {
		vars[name] = g.Literal(bindings[name])
	}
	out, err := n.Build(g, vars)
	if err != nil {
		return autodiff.Value{}, nil, err
	}
	return out, vars, nil
}

// ParseBinding parses "name=value".
func ParseBinding(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || !isIdent(name) {
		return "", 0, errors.Errorf("invalid binding %q: want name=value", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, errors.Wrapf(err, "invalid value in binding %q", s)
	}
	return name, x, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return syntaxErrorf(pos, "expression nested deeper than %d", maxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) expr() (Node, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		var kind ops.Kind
		switch tok.kind {
		case tokPlus:
			kind = ops.KindAdd
		case tokMinus:
			kind = ops.KindSub
		default:
			return x, nil
		}
		p.next()
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = &Binary{Offset: tok.pos, Op: kind, X: x, Y: y}
	}
}

func (p *parser) term() (Node, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokStar {
		tok := p.next()
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = &Binary{Offset: tok.pos, Op: ops.KindMul, X: x, Y: y}
	}
	return x, nil
}

func (p *parser) unary() (Node, error) {
	tok := p.peek()
	if tok.kind != tokMinus {
		return p.power()
	}
	p.next()
	if err := p.enter(tok.pos); err != nil {
		return nil, err
	}
	defer p.leave()
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Neg{Offset: tok.pos, X: x}, nil
}

func (p *parser) power() (Node, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	caret := p.next()
	tok := p.next()
	if tok.kind != tokNumber {
		return nil, syntaxErrorf(tok.pos, "exponent must be a non-negative integer, got %s", describe(tok))
	}
	exponent, err := strconv.ParseUint(tok.text, 10, 32)
	if err != nil {
		return nil, syntaxErrorf(tok.pos, "exponent must be a non-negative integer, got %q", tok.text)
	}
	return &Power{Offset: caret.pos, Base: base, Exponent: uint32(exponent)}, nil
}

func (p *parser) atom() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		x, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, syntaxErrorf(tok.pos, "invalid number %q", tok.text)
		}
		return &Number{Offset: tok.pos, Value: x}, nil
	case tokIdent:
		return &Ident{Offset: tok.pos, Name: tok.text}, nil
	case tokLParen:
		if err := p.enter(tok.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, syntaxErrorf(closing.pos, "expected ')' to close '(' at offset %d, got %s", tok.pos, describe(closing))
		}
		return x, nil
	default:
		return nil, syntaxErrorf(tok.pos, "expected number, identifier or '(', got %s", describe(tok))
	}
}

func describe(tok token) string {
	if tok.kind == tokNumber || tok.kind == tokIdent {
		return tok.kind.String() + " " + strconv.Quote(tok.text)
	}
	return tok.kind.String()
}

// firstUse returns the offset of the first occurrence of name, or -1.
func firstUse(n Node, name string) int {
	switch n := n.(type) {
	case *Ident:
		if n.Name == name {
			return n.Offset
		}
	case *Neg:
		return firstUse(n.X, name)
	case *Binary:
		if off := firstUse(n.X, name); off >= 0 {
			return off
		}
		return firstUse(n.Y, name)
	case *Power:
		return firstUse(n.Base, name)
	}
	return -1
}
