package lexer

import (
	"lupin/internal/diag"
	"lupin/internal/token"
)

// scanString сканирует "..." целиком, включая кавычки.
// Escape-последовательности (\t \n \r \" \' \u \\) не декодируются: '\' и
// следующий байт просто переносятся в Token.Text. Незакрытая строка
// становится Unknown до конца ввода.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.NewLiteral(sp, token.StringLit, token.NoRadix, lx.slice(sp))
		case '\\':
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.NewUnknown(sp, lx.slice(sp))
}
