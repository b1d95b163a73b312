package ast

import (
	"lupin/internal/source"
	"lupin/internal/token"
)

// Pair is one list item and the separator that followed it, if any.
type Pair[T Node] struct {
	Item T
	Sep  *token.Token
}

// DelimitedPunctuated is a separator-punctuated list between an opening and
// a closing delimiter, e.g. `(a, b,)`. Only the last pair may lack Sep.
type DelimitedPunctuated[T Node] struct {
	Open  token.Token
	Pairs []Pair[T]
	Close token.Token
}

func (d *DelimitedPunctuated[T]) Span() source.Span { return d.Open.Span.Cover(d.Close.Span) }

// Items returns the list items without separators.
func (d *DelimitedPunctuated[T]) Items() []T {
	items := make([]T, 0, len(d.Pairs))
	for _, p := range d.Pairs {
		items = append(items, p.Item)
	}
	return items
}

// Len returns the number of items.
func (d *DelimitedPunctuated[T]) Len() int { return len(d.Pairs) }

// HasTrailingSeparator reports whether the last item is followed by a separator.
func (d *DelimitedPunctuated[T]) HasTrailingSeparator() bool {
	return len(d.Pairs) > 0 && d.Pairs[len(d.Pairs)-1].Sep != nil
}

func (d *DelimitedPunctuated[T]) children() []Node {
	out := make([]Node, 0, len(d.Pairs))
	for _, p := range d.Pairs {
		out = append(out, p.Item)
	}
	return out
}
