package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"lupin/internal/source"
)

// Cursor is a byte position in one file. It never moves past the end
// and yields 0 there, so scanners can peek without bounds checks.
type Cursor struct {
	file *source.File
	off  uint32
	end  uint32
}

func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{file: f, end: end}
}

// Offset — текущее смещение от начала файла.
func (c *Cursor) Offset() uint32 { return c.off }

// End is the length of the file, the offset of the EOF token.
func (c *Cursor) End() uint32 { return c.end }

func (c *Cursor) EOF() bool { return c.off >= c.end }

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt looks n bytes ahead without moving.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.end {
		return 0
	}
	return c.file.Content[c.off+n]
}

// Peek2 возвращает два следующих байта; ok=false, если их меньше двух.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.off+1 >= c.end {
		return 0, 0, false
	}
	return c.file.Content[c.off], c.file.Content[c.off+1], true
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.file.Content[c.off] != b {
		return false
	}
	c.off++
	return true
}

// EatWhile consumes bytes while pred holds and returns how many it took.
func (c *Cursor) EatWhile(pred func(byte) bool) uint32 {
	from := c.off
	for !c.EOF() && pred(c.file.Content[c.off]) {
		c.off++
	}
	return c.off - from
}

func (c *Cursor) SkipToEnd() { c.off = c.end }

// Mark is a saved offset for SpanFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.off) }

// SpanFrom covers the bytes consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.off}
}

func (c *Cursor) Reset(m Mark) { c.off = uint32(m) }
