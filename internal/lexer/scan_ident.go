package lexer

import (
	"lupin/internal/token"
)

// scanIdentOrKeyword сканирует [a-zA-Z_][a-zA-Z0-9_]*.
// true/false становятся булевыми литералами; ключевые слова и имена
// встроенных типов помечаются в token.NewIdent. Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.EatWhile(isIdentContinueByte)

	sp := lx.cursor.SpanFrom(start)
	text := lx.slice(sp)

	if text == "true" || text == "false" {
		return token.NewLiteral(sp, token.BoolLit, token.NoRadix, text)
	}
	return token.NewIdent(sp, text)
}
