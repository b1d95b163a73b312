package ast_test

import (
	"fmt"
	"strings"
	"testing"

	"lupin/internal/ast"
	"lupin/internal/source"
	"lupin/internal/token"
)

func ident(start uint32, text string) token.Token {
	return token.NewIdent(source.Span{Start: start, End: start + uint32(len(text))}, text)
}

func sym(start uint32, s token.Sym) token.Token {
	return token.NewSymbol(source.Span{Start: start, End: start + uint32(len(s.String()))}, s)
}

// i32 f :: (u32 a, bool b,)
func sampleFuncDef() *ast.FuncDef {
	comma1 := sym(15, token.Comma)
	comma2 := sym(23, token.Comma)
	return &ast.FuncDef{
		ReturnType: &ast.Type{Name: ident(0, "i32")},
		Name:       ident(4, "f"),
		TwoColons:  sym(6, token.TwoColons),
		Args: &ast.DelimitedPunctuated[*ast.FuncArg]{
			Open: sym(9, token.LParen),
			Pairs: []ast.Pair[*ast.FuncArg]{
				{Item: &ast.FuncArg{Type: &ast.Type{Name: ident(10, "u32")}, Name: ident(14, "a")}, Sep: &comma1},
				{Item: &ast.FuncArg{Type: &ast.Type{Name: ident(17, "bool")}, Name: ident(22, "b")}, Sep: &comma2},
			},
			Close: sym(24, token.RParen),
		},
	}
}

func TestWalkPreOrder(t *testing.T) {
	var names []string
	ast.Walk(&ast.Root{Stmt: sampleFuncDef()}, func(n ast.Node) bool {
		names = append(names, strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast."))
		return true
	})
	want := "Root FuncDef Type DelimitedPunctuated[*lupin/internal/ast.FuncArg] FuncArg Type FuncArg Type"
	if got := strings.Join(names, " "); got != want {
		t.Fatalf("walk order:\n got %s\nwant %s", got, want)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	count := 0
	ast.Walk(sampleFuncDef(), func(n ast.Node) bool {
		count++
		_, isArgs := n.(*ast.DelimitedPunctuated[*ast.FuncArg])
		return !isArgs
	})
	if count != 3 {
		t.Fatalf("visited %d nodes, want 3", count)
	}
}

func TestDerivedSpans(t *testing.T) {
	fn := sampleFuncDef()
	if sp := fn.Span(); sp.Start != 0 || sp.End != 25 {
		t.Fatalf("funcdef span %s", sp)
	}
	if !fn.Args.HasTrailingSeparator() || fn.Args.Len() != 2 {
		t.Fatal("trailing separator not detected")
	}

	a := &ast.NameExpr{Name: ident(0, "a")}
	b := &ast.LiteralExpr{Tok: token.NewLiteral(source.Span{Start: 4, End: 5}, token.IntLit, token.Decimal, "1")}
	bin := &ast.BinaryExpr{Left: a, OpTok: sym(2, token.Plus), Op: ast.BinaryAdd, Right: b}
	if sp := bin.Span(); sp.Start != 0 || sp.End != 5 {
		t.Fatalf("binary span %s", sp)
	}
	paren := &ast.ParenExpr{Open: sym(0, token.LParen), Inner: &ast.ParenExpr{Open: sym(1, token.LParen), Inner: a, Close: sym(3, token.RParen)}, Close: sym(4, token.RParen)}
	if ast.Unparen(paren) != ast.Expr(a) {
		t.Fatal("Unparen should strip every layer")
	}
}

func TestBinaryOpFor(t *testing.T) {
	if op, ok := ast.BinaryOpFor(token.Plus); !ok || op != ast.BinaryAdd || op.String() != "+" {
		t.Fatal("plus should map to BinaryAdd")
	}
	if _, ok := ast.BinaryOpFor(token.Minus); ok {
		t.Fatal("minus is not a binary operator yet")
	}
}
