package parser

import (
	"slices"

	"lupin/internal/token"
	"lupin/internal/trace"
)

// Имена правил грамматики, они же попадают в ExpectNode.
const (
	nodeStatement  = "statement"
	nodeType       = "type"
	nodeExpression = "expression"
	nodeAssignment = "assignment"
	nodeFuncArg    = "function argument"
	nodeFuncArgs   = "function arguments"
	nodeFuncDef    = "function definition"
)

// checkFirst validates the first token of rule name without consuming it.
func (p *Parser) checkFirst(name string, kinds ...token.Kind) error {
	tok := p.cur.peek()
	if slices.Contains(kinds, tok.Kind) {
		return nil
	}
	return &ParseError{Found: tok, Expectation: ExpectNode{Name: name, First: kinds}}
}

// expectFirst is checkFirst that consumes the token on success.
func (p *Parser) expectFirst(name string, kinds ...token.Kind) (token.Token, error) {
	if err := p.checkFirst(name, kinds...); err != nil {
		return token.Token{}, err
	}
	return p.cur.advance(), nil
}

// expectKind consumes a token of one of kinds, or fails with ExpectKinds.
func (p *Parser) expectKind(kinds ...token.Kind) (token.Token, error) {
	tok := p.cur.peek()
	if slices.Contains(kinds, tok.Kind) {
		return p.cur.advance(), nil
	}
	return token.Token{}, &ParseError{Found: tok, Expectation: ExpectKinds(kinds)}
}

// expectSymbol consumes the symbol s, or fails with ExpectSymbols.
func (p *Parser) expectSymbol(s token.Sym) (token.Token, error) {
	if tok, ok := p.checkSymbol(s); ok {
		return tok, nil
	}
	return token.Token{}, &ParseError{Found: p.cur.peek(), Expectation: ExpectSymbols{s}}
}

// checkSymbol consumes the symbol s if it is next; no error otherwise.
func (p *Parser) checkSymbol(s token.Sym) (token.Token, bool) {
	if tok := p.cur.peek(); tok.IsSymbol(s) {
		return p.cur.advance(), true
	}
	return token.Token{}, false
}

// rule opens a trace span for a grammar rule; call the result to close it.
func (p *Parser) rule(name string) func() {
	t := p.opts.Tracer
	if !t.Level().ShouldEmit(trace.ScopeNode) {
		return func() {}
	}
	parent := p.opts.ParentSpan
	if n := len(p.spans); n > 0 {
		parent = p.spans[n-1]
	}
	span := trace.BeginDepth(t, trace.ScopeNode, name, parent, len(p.spans)+1)
	p.spans = append(p.spans, span.ID())
	return func() {
		p.spans = p.spans[:len(p.spans)-1]
		span.End("")
	}
}
