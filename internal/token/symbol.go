package token

// Sym is the enumerated tag carried by Symbol tokens.
type Sym uint8

const (
	NoSym Sym = iota
	// Assign represents the assign symbol.
	Assign // =
	// ColonAssign represents the colon assign symbol.
	ColonAssign // :=
	// TwoColons represents the function definition separator.
	TwoColons // ::
	Gt        // >
	Lt        // <
	GtEq      // >=
	LtEq      // <=
	EqEq      // ==
	BangEq    // !=
	Comma     // ,
	Dot       // .
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	FatArrow  // =>
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
)

var symSpellings = [...]string{
	NoSym:       "",
	Assign:      "=",
	ColonAssign: ":=",
	TwoColons:   "::",
	Gt:          ">",
	Lt:          "<",
	GtEq:        ">=",
	LtEq:        "<=",
	EqEq:        "==",
	BangEq:      "!=",
	Comma:       ",",
	Dot:         ".",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	FatArrow:    "=>",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
}

// String returns the canonical spelling of the symbol.
func (s Sym) String() string {
	if int(s) < len(symSpellings) {
		return symSpellings[s]
	}
	return "Sym(?)"
}

// binaryOps lists the symbols accepted as infix operators by the expression
// grammar. Extending the operator set means adding an entry here.
var binaryOps = map[Sym]bool{
	Plus: true,
}

// IsBinaryOp reports whether s may join two expressions.
func (s Sym) IsBinaryOp() bool {
	return binaryOps[s]
}

// LookupSymbol returns the symbol spelled exactly as text.
func LookupSymbol(text string) (Sym, bool) {
	for s, spelling := range symSpellings {
		if spelling != "" && spelling == text {
			return Sym(s), true
		}
	}
	return NoSym, false
}
