package lexer

import (
	"lupin/internal/source"
	"lupin/internal/token"
)

// TokenizeAll lexes the whole file, Unknown tokens included. The result
// always ends with exactly one EOF token.
func TokenizeAll(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Tokenize lexes the whole file and fails at the first Unknown token.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		t := lx.Next()
		if t.Kind == token.Unknown {
			return nil, &UnknownTokenError{Span: t.Span, Text: t.Text}
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks, nil
		}
	}
}

// FirstUnknown returns an error for the first Unknown token in toks, or nil.
func FirstUnknown(toks []token.Token) error {
	for _, t := range toks {
		if t.Kind == token.Unknown {
			return &UnknownTokenError{Span: t.Span, Text: t.Text}
		}
	}
	return nil
}
