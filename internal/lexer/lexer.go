package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"turingc/internal/diag"
	"turingc/internal/source"
	"turingc/internal/token"
)

// maxTokenLength bounds a single token's byte length, guarding against
// pathological input (e.g. an unterminated string spanning megabytes)
// producing an unusably large diagnostic span.
const maxTokenLength = 64 * 1024

// Lexer converts a file's content into a stream of tokens, per spec
// section 4.2's Scanner.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	interner *source.Interner

	look     *token.Token // one-token lookahead buffer, used by stitching and Peek
	lookHold []token.Trivia
	hold     []token.Trivia
}

// New creates a Lexer over file, interning identifiers/literals into in.
func New(file *source.File, in *source.Interner, opts Options) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		opts:     opts,
		interner: in,
	}
}

// Next returns the next significant token, with its leading trivia
// (whitespace and comments) attached. Past EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	tok := lx.nextStitched()
	lx.enforceTokenLength(&tok)
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	lx.lookHold = t.LeadingTrivia
	return t
}

// nextStitched fuses "not"/"~" with an immediately following "in" or "="
// into NotIn/NotEqu (spec section 4.2's tail-stitching rule), buffering at
// most one token of lookahead so stitching can see past the token it
// would otherwise have already handed to the caller.
func (lx *Lexer) nextStitched() token.Token {
	if lx.look != nil {
		t := *lx.look
		t.LeadingTrivia = lx.lookHold
		lx.look = nil
		lx.lookHold = nil
		return t
	}

	lx.collectLeadingTrivia()
	leading := lx.hold
	lx.hold = nil
	tok := lx.scanOne()

	if tok.Kind != token.KwNot && tok.Kind != token.Tilde {
		tok.LeadingTrivia = leading
		return tok
	}

	lx.collectLeadingTrivia()
	midTrivia := lx.hold
	lx.hold = nil
	next := lx.scanOne()

	switch next.Kind {
	case token.KwIn:
		return token.Token{Kind: token.NotIn, Span: tok.Span.Cover(next.Span), LeadingTrivia: leading}
	case token.Equ:
		return token.Token{Kind: token.NotEqu, Span: tok.Span.Cover(next.Span), LeadingTrivia: leading}
	default:
		next.LeadingTrivia = midTrivia
		lx.look = &next
		lx.lookHold = midTrivia
		tok.LeadingTrivia = leading
		return tok
	}
}

// scanOne dispatches to the scanner for the current byte. Leading trivia
// must already have been collected by the caller.
func (lx *Lexer) scanOne() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) isNumberAfterDot() bool {
	_, next, ok := lx.cursor.Peek2()
	return ok && isDec(next)
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) enforceTokenLength(tok *token.Token) {
	length := tok.Span.End - tok.Span.Start
	if length <= maxTokenLength {
		return
	}
	lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token length %d exceeds limit %d", length, maxTokenLength))
	tok.Kind = token.Invalid
	if off, err := safecast.Conv[uint32](len(lx.file.Content)); err == nil {
		lx.cursor.Off = off
	}
}
