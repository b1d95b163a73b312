package parser

import (
	"lupin/internal/ast"
	"lupin/internal/token"
)

// binaryOp classifies tok as a binary operator. The operator set lives in
// token.Sym.IsBinaryOp; ast.BinaryOpFor maps it to the tree.
func binaryOp(tok token.Token) (ast.BinaryOp, bool) {
	if tok.Kind != token.Symbol || !tok.Symbol().IsBinaryOp() {
		return ast.BinaryInvalid, false
	}
	return ast.BinaryOpFor(tok.Symbol())
}
