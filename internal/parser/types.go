package parser

import (
	"lupin/internal/ast"
	"lupin/internal/token"
)

// parseType ::= Identifier. Any identifier is accepted, keyword or not.
func (p *Parser) parseType() (*ast.Type, error) {
	defer p.rule(nodeType)()

	name, err := p.expectFirst(nodeType, token.Identifier)
	if err != nil {
		return nil, err
	}
	return &ast.Type{Name: name}, nil
}
