package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"turingc/internal/source"
)

// Cursor is a position within a file's content, tracking both the byte
// offset (for spans) and the Location (line/column/width) an error
// message needs, per spec section 4.1's SourceCursor.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
	Loc   source.Location
}

// NewCursor creates a cursor positioned at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: file content length overflow: %w", err))
	}
	return Cursor{File: f, Off: 0, Limit: limit, Loc: source.NewLocation()}
}

// EOF reports whether the cursor has reached the end of its range.
func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 returns the current and next byte, with ok false if either is
// past the cursor's range.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// PeekRune decodes the rune starting at the cursor without consuming it.
// size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
	return r, sz
}

// Bump consumes one byte and returns it, advancing Loc by one ASCII
// column. Callers scanning possibly-multibyte text should use BumpRune.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	c.Loc.Advance(rune(b))
	return b
}

// BumpRune consumes one full rune (1-4 bytes) and advances Loc by its
// display width or, for a newline, to the next line.
func (c *Cursor) BumpRune() rune {
	r, sz := c.PeekRune()
	if sz == 0 {
		return utf8.RuneError
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("lexer: rune size overflow: %w", err))
	}
	c.Off += usz
	c.Loc.Advance(r)
	return r
}

// Mark is a saved cursor offset, used with SpanFrom to build a Span for a
// just-scanned lexeme.
type Mark uint32

// Mark records the current offset and resets Loc's step/width accounting,
// so the next lexeme's width is measured from here (spec section 4.1's
// SourceCursor.step()).
func (c *Cursor) Mark() Mark {
	c.Loc.Step()
	return Mark(c.Off)
}

// SpanFrom builds the Span covering [m, current offset).
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		c.Loc.Advance(rune(b))
		return true
	}
	return false
}
