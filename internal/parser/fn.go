package parser

import (
	"lupin/internal/ast"
	"lupin/internal/token"
)

// parseFuncDef ::= Type Identifier '::' '(' [FuncArg {',' FuncArg} [',']] ')'
func (p *Parser) parseFuncDef() (*ast.FuncDef, error) {
	defer p.rule(nodeFuncDef)()

	if err := p.checkFirst(nodeFuncDef, token.Identifier); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectKind(token.Identifier)
	if err != nil {
		return nil, err
	}
	colons, err := p.expectSymbol(token.TwoColons)
	if err != nil {
		return nil, err
	}
	args, err := p.parseFuncArgs()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDef{ReturnType: ret, Name: name, TwoColons: colons, Args: args}, nil
}

func (p *Parser) parseFuncArgs() (*ast.DelimitedPunctuated[*ast.FuncArg], error) {
	defer p.rule(nodeFuncArgs)()
	return parseDelimited(p, parenDelim, p.parseFuncArg)
}

// parseFuncArg ::= Type Identifier
func (p *Parser) parseFuncArg() (*ast.FuncArg, error) {
	defer p.rule(nodeFuncArg)()

	if err := p.checkFirst(nodeFuncArg, token.Identifier); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectKind(token.Identifier)
	if err != nil {
		return nil, err
	}
	return &ast.FuncArg{Type: ty, Name: name}, nil
}
