package parser

import (
	"lupin/internal/token"
)

// cursor reads a finite token slice that ends with exactly one EOF token.
type cursor struct {
	toks []token.Token
	pos  int
	prev int // position before the last advance, -1 if none to undo
}

// mark is a checkpoint taken by cursor.mark.
type mark int

func newCursor(toks []token.Token) *cursor {
	return &cursor{toks: toks, prev: -1}
}

// peek returns the current token. At or past the end it returns EOF.
func (c *cursor) peek() token.Token {
	if c.pos >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[c.pos]
}

// advance consumes one token and returns it. EOF is never consumed past.
func (c *cursor) advance() token.Token {
	tok := c.peek()
	c.prev = c.pos
	if tok.Kind != token.EOF {
		c.pos++
	}
	return tok
}

// backtrack undoes exactly the previous advance.
func (c *cursor) backtrack() {
	if c.prev < 0 {
		panic("parser: backtrack without a preceding advance")
	}
	c.pos = c.prev
	c.prev = -1
}

func (c *cursor) mark() mark {
	return mark(c.pos)
}

func (c *cursor) reset(m mark) {
	c.pos = int(m)
	c.prev = -1
}
