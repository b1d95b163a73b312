package ast

import (
	"lupin/internal/source"
	"lupin/internal/token"
)

// Expr is one of *LiteralExpr, *NameExpr, *ParenExpr, *BinaryExpr.
type Expr interface {
	Node
	exprNode()
}

// BinaryOp enumerates binary operators.
type BinaryOp uint8

const (
	BinaryInvalid BinaryOp = iota
	BinaryAdd
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	default:
		return "<invalid>"
	}
}

// BinaryOpFor maps an operator symbol to its BinaryOp.
func BinaryOpFor(s token.Sym) (BinaryOp, bool) {
	switch s {
	case token.Plus:
		return BinaryAdd, true
	default:
		return BinaryInvalid, false
	}
}

// LiteralExpr wraps an integer, float, string or boolean literal token.
type LiteralExpr struct {
	Tok token.Token
}

// NameExpr is a reference to a named value.
type NameExpr struct {
	Name token.Token
}

// ParenExpr is `(` Inner `)`.
type ParenExpr struct {
	Open  token.Token
	Inner Expr
	Close token.Token
}

// BinaryExpr is Left Op Right. The parser nests chains to the right.
type BinaryExpr struct {
	Left  Expr
	OpTok token.Token
	Op    BinaryOp
	Right Expr
}

func (e *LiteralExpr) Span() source.Span { return e.Tok.Span }
func (e *NameExpr) Span() source.Span    { return e.Name.Span }
func (e *ParenExpr) Span() source.Span   { return e.Open.Span.Cover(e.Close.Span) }
func (e *BinaryExpr) Span() source.Span  { return e.Left.Span().Cover(e.Right.Span()) }

func (*LiteralExpr) exprNode() {}
func (*NameExpr) exprNode()    {}
func (*ParenExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}

// Unparen strips any number of enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.Inner
	}
}
