package lexer

import (
	"lupin/internal/diag"
	"lupin/internal/source"
	"lupin/internal/token"
)

// Lexer turns one source.File into a stream of tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	done   bool         // EOF уже выдан
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. Whitespace is skipped.
// After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipWhitespace()

	// EOF: пустой span в конце ввода
	if lx.done || lx.cursor.EOF() {
		lx.done = true
		return token.NewEOF(lx.file.ID, lx.cursor.End())
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		// ".5" и "._1" — дробная часть без целой
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	default:
		var ok bool
		if tok, ok = lx.scanSymbol(); !ok {
			tok = lx.scanUnknown()
		}
	}

	if sp := lx.cursor.SpanFrom(start); lx.opts.MaxTokenLen > 0 && sp.Len() > lx.opts.MaxTokenLen {
		lx.report(diag.LexTokenTooLong, sp, "token exceeds maximum length")
		// дальше лексить нет смысла — проматываем до конца
		lx.cursor.SkipToEnd()
		return token.NewUnknown(sp, lx.slice(sp))
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) skipWhitespace() {
	lx.cursor.EatWhile(isSpace)
}

func (lx *Lexer) slice(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
