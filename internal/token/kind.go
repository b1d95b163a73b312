package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Unknown marks a slice of input that matches no lexical rule.
	Unknown Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Identifier covers names, keywords and builtin type names.
	Identifier
	// Symbol covers operators and punctuation.
	Symbol
	// Literal covers numeric, string and boolean literals.
	Literal
)

var kindNames = [...]string{
	Unknown:    "unknown",
	EOF:        "end of input",
	Identifier: "identifier",
	Symbol:     "symbol",
	Literal:    "literal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether k is the end-of-input kind.
func (k Kind) IsEOF() bool { return k == EOF }
