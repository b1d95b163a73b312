package parser

import (
	"lupin/internal/ast"
	"lupin/internal/token"
)

var exprFirst = []token.Kind{token.Symbol, token.Identifier, token.Literal}

// parseExpr ::= '(' Expr ')' | Identifier | Literal, each optionally followed
// by a binary operator and another Expr. The right operand is a full
// expression, so `a + b + c` is `a + (b + c)`.
func (p *Parser) parseExpr() (ast.Expr, error) {
	defer p.rule(nodeExpression)()

	if err := p.enterExpr(); err != nil {
		return nil, err
	}
	defer p.leaveExpr()

	first := p.cur.peek()
	var lhs ast.Expr
	switch first.Kind {
	case token.Symbol:
		if !first.IsSymbol(token.LParen) {
			return nil, &ParseError{Found: first, Expectation: ExpectSymbols{token.LParen}}
		}
		lparen := p.cur.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rparen, err := p.expectSymbol(token.RParen)
		if err != nil {
			return nil, err
		}
		lhs = &ast.ParenExpr{Open: lparen, Inner: inner, Close: rparen}

	case token.Identifier:
		lhs = &ast.NameExpr{Name: p.cur.advance()}

	case token.Literal:
		lhs = &ast.LiteralExpr{Tok: p.cur.advance()}

	default:
		return nil, &ParseError{Found: first, Expectation: ExpectNode{Name: nodeExpression, First: exprFirst}}
	}

	return p.parseBinaryTail(lhs)
}

// parseBinaryTail consumes `op Expr` after lhs when the next token is a
// binary operator; otherwise it puts the probed token back.
func (p *Parser) parseBinaryTail(lhs ast.Expr) (ast.Expr, error) {
	opTok := p.cur.advance()
	op, ok := binaryOp(opTok)
	if !ok {
		p.cur.backtrack()
		return lhs, nil
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: lhs, OpTok: opTok, Op: op, Right: rhs}, nil
}

// enterExpr counts one level per Expr, so both a paren and every operand
// after a '+' in a chain use up depth.
func (p *Parser) enterExpr() error {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		return &DepthError{Limit: p.maxDepth, Found: p.cur.peek()}
	}
	return nil
}

func (p *Parser) leaveExpr() {
	p.depth--
}
