package parser

import (
	"fmt"
	"strings"
	"testing"

	"lupin/internal/ast"
)

func mustParse(t *testing.T, src string, opts Options) *ast.Root {
	t.Helper()
	root, err := Parse(src, opts)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root
}

// shape renders an expression with explicit grouping: binary nodes as
// [l + r], parentheses kept as written.
func shape(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return e.Tok.Text
	case *ast.NameExpr:
		return e.Name.Text
	case *ast.ParenExpr:
		return "(" + shape(e.Inner) + ")"
	case *ast.BinaryExpr:
		return "[" + shape(e.Left) + " " + e.Op.String() + " " + shape(e.Right) + "]"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func argsString(f *ast.FuncDef) string {
	parts := make([]string, 0, f.Args.Len())
	for _, a := range f.Args.Items() {
		parts = append(parts, a.Type.String()+" "+a.Name.Text)
	}
	return strings.Join(parts, ", ")
}
