package source

import "github.com/mattn/go-runewidth"

// Location is a 1-based line/column position plus the width and line-span
// of the lexeme it was measured over. Column counts are in display
// columns, not bytes: tabs default to 4 columns (DefaultTabWidth) and
// other runes use their terminal display width so diagnostic rendering
// lines up with what a user actually sees.
type Location struct {
	Line      uint32
	Column    uint32
	Width     uint32
	LineSpan  uint32 // number of source lines the lexeme covers, >= 1
}

// DefaultTabWidth is the display width assigned to a tab character when no
// width matters except diagnostics.
const DefaultTabWidth = 4

// NewLocation returns the starting location for a file: line 1, column 1.
func NewLocation() Location {
	return Location{Line: 1, Column: 1, Width: 0, LineSpan: 1}
}

// step resets width/line-span tracking so a new lexeme can begin at the
// current position; mirrors SourceCursor.step() from spec section 4.1.
func (l *Location) step() {
	l.Width = 0
	l.LineSpan = 1
}

// Step is the exported form of step, called by the lexer's Cursor when it
// marks the start of a new token.
func (l *Location) Step() { l.step() }

// columns advances the column counter by n display columns.
func (l *Location) columns(n uint32) {
	l.Column += n
	l.Width += n
}

// lines advances the line counter by n lines and resets the column to 1.
func (l *Location) lines(n uint32) {
	l.Line += n
	l.Column = 1
	l.LineSpan += n
}

// Advance folds one decoded rune into the location: a newline moves to the
// next line, anything else widens the current column by its display width.
// Exported so the lexer's Cursor can drive Location tracking byte-by-byte.
func (l *Location) Advance(r rune) {
	if r == '\n' {
		l.lines(1)
		return
	}
	l.columns(columnWidthOf(r))
}

// columnWidthOf reports the display-column width contributed by a single
// rune: DefaultTabWidth for tab, RuneWidth otherwise (minimum 1, matching
// the scanner's need for forward-progress accounting even over
// zero-width combining marks).
func columnWidthOf(r rune) uint32 {
	if r == '\t' {
		return DefaultTabWidth
	}
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		w = 1
	}
	return uint32(w)
}
