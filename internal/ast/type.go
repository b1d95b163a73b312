package ast

import (
	"lupin/internal/source"
	"lupin/internal/token"
)

// Type is a type reference. The grammar only knows named types.
type Type struct {
	Name token.Token
}

func (t *Type) Span() source.Span { return t.Name.Span }

// String returns the type name as written.
func (t *Type) String() string { return t.Name.Text }
