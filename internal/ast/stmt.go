package ast

import (
	"lupin/internal/source"
	"lupin/internal/token"
)

// Assignment is `Type Name = Value`.
type Assignment struct {
	Type   *Type
	Name   token.Token
	Assign token.Token
	Value  Expr
}

func (a *Assignment) Span() source.Span { return a.Type.Span().Cover(a.Value.Span()) }
func (*Assignment) stmtNode()           {}

// FuncArg is one `Type Name` entry of an argument list.
type FuncArg struct {
	Type *Type
	Name token.Token
}

func (a *FuncArg) Span() source.Span { return a.Type.Span().Cover(a.Name.Span) }

// FuncDef is `ReturnType Name :: (args)`.
type FuncDef struct {
	ReturnType *Type
	Name       token.Token
	TwoColons  token.Token
	Args       *DelimitedPunctuated[*FuncArg]
}

func (f *FuncDef) Span() source.Span { return f.ReturnType.Span().Cover(f.Args.Span()) }
func (*FuncDef) stmtNode()           {}
