package lexer

import (
	"lupin/internal/diag"
	"lupin/internal/source"
)

type Options struct {
	// Reporter получает диагностики лексера; может быть nil — тогда ошибки
	// игнорируем, но продолжаем лексить.
	Reporter diag.Reporter
	// MaxTokenLen limits the byte length of one token; 0 means unlimited.
	MaxTokenLen uint32
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
