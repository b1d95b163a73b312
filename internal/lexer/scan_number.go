package lexer

import (
	"lupin/internal/token"
)

// scanNumber recognises, in priority order:
//
//	0b[01_]+ | 0B[01_]+            binary integer
//	0x[0-9a-fA-F_]+ | 0X...        hexadecimal integer
//	[0-9][0-9_]* '.' [0-9_]*       float ("1.", "24_.", "5.6")
//	'.' [0-9_]+                    float (".0", "._1"), needs a digit in the run
//	[0-9][0-9_]*                   decimal integer
//
// Underscores are kept in Token.Text.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	// ведущая точка — формат ".digits"
	if lx.cursor.Eat('.') {
		lx.skipDigits(isDec)
		sp := lx.cursor.SpanFrom(start)
		return token.NewLiteral(sp, token.FloatLit, token.NoRadix, lx.slice(sp))
	}

	// ведущий 0 и база?
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			if isBinOrUnderscore(lx.cursor.PeekAt(2)) {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.skipDigits(isBin)
				sp := lx.cursor.SpanFrom(start)
				return token.NewLiteral(sp, token.IntLit, token.Binary, lx.slice(sp))
			}
		case 'x', 'X':
			if b := lx.cursor.PeekAt(2); isHex(b) || b == '_' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.skipDigits(isHex)
				sp := lx.cursor.SpanFrom(start)
				return token.NewLiteral(sp, token.IntLit, token.Hexadecimal, lx.slice(sp))
			}
		}
	}

	// десятичная целая часть
	lx.skipDigits(isDec)

	// дробная часть: "1." и "1.5" — float
	if lx.cursor.Eat('.') {
		lx.skipDigits(isDec)
		sp := lx.cursor.SpanFrom(start)
		return token.NewLiteral(sp, token.FloatLit, token.NoRadix, lx.slice(sp))
	}

	sp := lx.cursor.SpanFrom(start)
	return token.NewLiteral(sp, token.IntLit, token.Decimal, lx.slice(sp))
}

func (lx *Lexer) skipDigits(isDigit func(byte) bool) {
	lx.cursor.EatWhile(func(b byte) bool { return isDigit(b) || b == '_' })
}

// isNumberAfterDot: текущая точка, дальше [0-9_]* с хотя бы одной цифрой?
func (lx *Lexer) isNumberAfterDot() bool {
	for i := uint32(1); ; i++ {
		switch b := lx.cursor.PeekAt(i); {
		case isDec(b):
			return true
		case b == '_':
			continue
		default:
			return false
		}
	}
}

func isBinOrUnderscore(b byte) bool { return isBin(b) || b == '_' }
