package token

import (
	"fmt"

	"lupin/internal/source"
)

// Token represents a single source token with its location and payload.
type Token struct {
	Kind Kind
	Span source.Span
	Text string

	sym Sym
	kw  Keyword
	lit LiteralValue
}

// NewIdent builds an Identifier token, tagging it when text is a keyword.
func NewIdent(sp source.Span, text string) Token {
	kw, _ := LookupKeyword(text)
	return Token{Kind: Identifier, Span: sp, Text: text, kw: kw}
}

// NewSymbol builds a Symbol token. Text is the canonical spelling of s.
func NewSymbol(sp source.Span, s Sym) Token {
	return Token{Kind: Symbol, Span: sp, Text: s.String(), sym: s}
}

// NewLiteral builds a Literal token; radix is ignored for non-integer kinds.
func NewLiteral(sp source.Span, kind LiteralKind, radix Radix, text string) Token {
	if kind != IntLit {
		radix = NoRadix
	}
	return Token{
		Kind: Literal,
		Span: sp,
		Text: text,
		lit:  LiteralValue{Kind: kind, Radix: radix, Text: text},
	}
}

// NewEOF builds the end-of-input token at off.
func NewEOF(file source.FileID, off uint32) Token {
	return Token{Kind: EOF, Span: source.Span{File: file, Start: off, End: off}}
}

// NewUnknown builds a token for text that matches no lexical rule.
func NewUnknown(sp source.Span, text string) Token {
	return Token{Kind: Unknown, Span: sp, Text: text}
}

func (t Token) mustBe(k Kind, what string) {
	if t.Kind != k {
		panic(fmt.Sprintf("token: %s requested on %s token %q at %s", what, t.Kind, t.Text, t.Span))
	}
}

// Symbol returns the symbol tag. It panics unless Kind == Symbol.
func (t Token) Symbol() Sym {
	t.mustBe(Symbol, "symbol")
	return t.sym
}

// Literal returns the literal payload. It panics unless Kind == Literal.
func (t Token) Literal() LiteralValue {
	t.mustBe(Literal, "literal")
	return t.lit
}

// Name returns the identifier text. It panics unless Kind == Identifier.
func (t Token) Name() string {
	t.mustBe(Identifier, "name")
	return t.Text
}

// Keyword returns the keyword tag (NoKeyword for plain names).
// It panics unless Kind == Identifier.
func (t Token) Keyword() Keyword {
	t.mustBe(Identifier, "keyword")
	return t.kw
}

// IsSymbol reports whether t is the symbol s. Safe on any kind.
func (t Token) IsSymbol(s Sym) bool {
	return t.Kind == Symbol && t.sym == s
}

// IsKeyword reports whether t is an identifier spelling a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind == Identifier && t.kw != NoKeyword
}

// Canonical re-serialises single-spelling tokens (symbols, keywords, EOF).
// Other tokens return their source text.
func (t Token) Canonical() string {
	switch {
	case t.Kind == Symbol:
		return t.sym.String()
	case t.IsKeyword():
		return t.kw.String()
	case t.Kind == EOF:
		return ""
	default:
		return t.Text
	}
}

// Describe renders the token for diagnostics, e.g. `symbol "::"`.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Literal:
		return fmt.Sprintf("%s literal %q", t.lit.Kind, t.Text)
	case Identifier:
		if t.kw.IsBuiltinType() {
			return fmt.Sprintf("type %q", t.Text)
		}
		if t.kw != NoKeyword {
			return fmt.Sprintf("keyword %q", t.Text)
		}
		return fmt.Sprintf("identifier %q", t.Text)
	default:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
}
