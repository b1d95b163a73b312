package parser

import (
	"lupin/internal/ast"
	"lupin/internal/token"
)

// delimiter is an opening/closing symbol pair around a punctuated list.
type delimiter struct {
	open, close token.Sym
}

var parenDelim = delimiter{open: token.LParen, close: token.RParen}

// parseDelimited reads open, then items separated by commas, then close.
// An empty list and a trailing comma are both accepted. After an item with
// no comma the closing delimiter is mandatory.
func parseDelimited[T ast.Node](p *Parser, d delimiter, item func() (T, error)) (*ast.DelimitedPunctuated[T], error) {
	open, err := p.expectSymbol(d.open)
	if err != nil {
		return nil, err
	}

	list := &ast.DelimitedPunctuated[T]{Open: open}
	for {
		if closeTok, ok := p.checkSymbol(d.close); ok {
			list.Close = closeTok
			return list, nil
		}

		it, err := item()
		if err != nil {
			return nil, err
		}
		pair := ast.Pair[T]{Item: it}
		sep, hasSep := p.checkSymbol(token.Comma)
		if hasSep {
			pair.Sep = &sep
		}
		list.Pairs = append(list.Pairs, pair)

		if !hasSep {
			closeTok, err := p.expectSymbol(d.close)
			if err != nil {
				return nil, err
			}
			list.Close = closeTok
			return list, nil
		}
	}
}
