package ops

// Kind tags the variant of an Operation.
type Kind uint8

// Operation kinds.
const (
	KindAdd Kind = iota + 1
	KindSub
	KindMul
	KindPow
	KindNeg
)

var kindNames = map[Kind]string{
	KindAdd: "Add",
	KindSub: "Sub",
	KindMul: "Mul",
	KindPow: "Pow",
	KindNeg: "Neg",
}

// String returns the operation name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Symbol returns the infix symbol of the operation ("+", "-", "*", "^").
// NegOp uses "-" as a prefix.
func (k Kind) Symbol() string {
	switch k {
	case KindAdd:
		return "+"
	case KindSub, KindNeg:
		return "-"
	case KindMul:
		return "*"
	case KindPow:
		return "^"
	default:
		return "?"
	}
}
