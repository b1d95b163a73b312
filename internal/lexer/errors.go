package lexer

import (
	"fmt"

	"lupin/internal/diag"
	"lupin/internal/source"
)

// UnknownTokenError is returned by Tokenize when the input contains a byte
// run that no lexical rule accepts.
type UnknownTokenError struct {
	Span source.Span
	Text string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token %q at %s", e.Text, e.Span)
}

// Diagnostic implements diag.Diagnosable.
func (e *UnknownTokenError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.LexUnknownChar, e.Span, "unknown token "+quote(e.Text))
}
