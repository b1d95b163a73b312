package parser

import (
	"testing"

	"lupin/internal/lexer"
	"lupin/internal/source"
	"lupin/internal/token"
)

func sourceFile(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.lp", []byte(src)))
}

func newTestCursor(t *testing.T, src string) *cursor {
	t.Helper()
	toks, err := lexer.Tokenize(sourceFile(src), lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return newCursor(toks)
}

func TestCursorPeekAdvance(t *testing.T) {
	c := newTestCursor(t, "a b")
	if c.peek().Text != "a" || c.peek().Text != "a" {
		t.Fatal("peek must not consume")
	}
	if c.advance().Text != "a" || c.advance().Text != "b" {
		t.Fatal("advance order")
	}
	for range 3 {
		if tok := c.advance(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %s", tok.Describe())
		}
	}
	if c.peek().Kind != token.EOF {
		t.Fatal("peek past the end must return EOF")
	}
}

func TestCursorBacktrack(t *testing.T) {
	c := newTestCursor(t, "a b")
	c.advance()
	c.backtrack()
	if c.peek().Text != "a" {
		t.Fatal("backtrack should restore the previous token")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("second backtrack must panic")
		}
	}()
	c.backtrack()
}

func TestCursorMarkReset(t *testing.T) {
	c := newTestCursor(t, "a b c")
	m := c.mark()
	c.advance()
	c.advance()
	if c.peek().Text != "c" {
		t.Fatal("expected c")
	}
	c.reset(m)
	if c.peek().Text != "a" {
		t.Fatal("reset should return to the mark")
	}
}
