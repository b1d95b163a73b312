package lexer

import (
	"lupin/internal/diag"
	"lupin/internal/token"
)

// twoByteSymbols пробуются раньше односимвольных: жадность.
var twoByteSymbols = []struct {
	a, b byte
	sym  token.Sym
}{
	{':', '=', token.ColonAssign},
	{':', ':', token.TwoColons},
	{'=', '>', token.FatArrow},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'>', '=', token.GtEq},
	{'<', '=', token.LtEq},
}

var oneByteSymbols = map[byte]token.Sym{
	'=': token.Assign,
	'>': token.Gt,
	'<': token.Lt,
	',': token.Comma,
	'.': token.Dot,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

// matchSymbol reports which symbol starts at the cursor and its byte length,
// without consuming anything.
func (lx *Lexer) matchSymbol() (token.Sym, uint32) {
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		for _, s := range twoByteSymbols {
			if b0 == s.a && b1 == s.b {
				return s.sym, 2
			}
		}
	}
	if s, ok := oneByteSymbols[lx.cursor.Peek()]; ok {
		return s, 1
	}
	return token.NoSym, 0
}

func (lx *Lexer) scanSymbol() (token.Token, bool) {
	sym, n := lx.matchSymbol()
	if n == 0 {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	for range n {
		lx.cursor.Bump()
	}
	return token.NewSymbol(lx.cursor.SpanFrom(start), sym), true
}

// scanUnknown consumes the maximal run of bytes that start no lexical rule.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && !lx.startsRule() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.slice(sp)
	lx.report(diag.LexUnknownChar, sp, "unknown token "+quote(text))
	return token.NewUnknown(sp, text)
}

// startsRule reports whether some rule (or whitespace) can begin at the cursor.
func (lx *Lexer) startsRule() bool {
	ch := lx.cursor.Peek()
	if isSpace(ch) || isDec(ch) || ch == '"' || isIdentStartByte(ch) {
		return true
	}
	_, n := lx.matchSymbol()
	return n > 0
}
