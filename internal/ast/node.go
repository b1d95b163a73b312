// Package ast holds the syntax tree produced by the parser.
//
// Nodes keep the tokens they were built from; composite spans are derived by
// covering child spans rather than stored.
package ast

import (
	"lupin/internal/source"
)

// Node is implemented by every tree node.
type Node interface {
	Span() source.Span
}

// Stmt is a top-level statement: *Assignment or *FuncDef.
type Stmt interface {
	Node
	stmtNode()
}

// Root is the result of a parse: exactly one statement.
type Root struct {
	Stmt Stmt
}

func (r *Root) Span() source.Span { return r.Stmt.Span() }
