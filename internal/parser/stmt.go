package parser

import (
	"lupin/internal/ast"
	"lupin/internal/token"
)

// parseStatement picks the rule from the third token: `T name ::` starts a
// function definition, anything else is parsed as an assignment.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	if err := p.checkFirst(nodeStatement, token.Identifier); err != nil {
		return nil, err
	}

	m := p.cur.mark()
	p.cur.advance()
	p.cur.advance()
	isFunc := p.cur.peek().IsSymbol(token.TwoColons)
	p.cur.reset(m)

	if isFunc {
		return p.parseFuncDef()
	}
	return p.parseAssignment()
}

// parseAssignment ::= Type Identifier '=' Expr
func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	defer p.rule(nodeAssignment)()

	if err := p.checkFirst(nodeAssignment, token.Identifier); err != nil {
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
	assign, err := p.expectSymbol(token.Assign)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Type: ty, Name: name, Assign: assign, Value: value}, nil
}
