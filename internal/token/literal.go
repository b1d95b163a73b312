package token

// LiteralKind classifies literal tokens.
type LiteralKind uint8

const (
	NoLiteral LiteralKind = iota
	IntLit
	FloatLit
	StringLit
	BoolLit
)

func (k LiteralKind) String() string {
	switch k {
	case IntLit:
		return "integer"
	case FloatLit:
		return "float"
	case StringLit:
		return "string"
	case BoolLit:
		return "boolean"
	default:
		return "none"
	}
}

// Radix is the base of an integer literal, taken from its prefix.
type Radix uint8

const (
	NoRadix Radix = iota
	Decimal
	Binary
	Hexadecimal
)

func (r Radix) String() string {
	switch r {
	case Decimal:
		return "decimal"
	case Binary:
		return "binary"
	case Hexadecimal:
		return "hexadecimal"
	default:
		return "none"
	}
}

// LiteralValue is the payload of a Literal token.
type LiteralValue struct {
	Kind  LiteralKind
	Radix Radix // only for IntLit
	Text  string
}

// Bool returns the value of a boolean literal.
func (v LiteralValue) Bool() bool {
	return v.Kind == BoolLit && v.Text == "true"
}
