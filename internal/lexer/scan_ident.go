package lexer

import (
	"golang.org/x/text/unicode/norm"

	"turingc/internal/token"
)

// scanIdentOrKeyword scans [Ident] and maps it through token.LookupKeyword.
// Unlike the ASCII-only fast path this borrows its structure from,
// identifiers here may start and continue with any Unicode letter (spec
// section 4.2), so both bytes and multi-byte runes are handled.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.BumpRune()
		for {
			r2, sz2 := lx.cursor.PeekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.cursor.BumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lexeme := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(lexeme); ok {
		return token.Token{Kind: k, Span: sp}
	}

	// Unicode identifier equivalence: two visually identical identifiers
	// spelled with different combining-mark sequences must resolve to the
	// same symbol, so normalize to NFC before interning.
	name := lx.interner.Intern(norm.NFC.String(lexeme))
	return token.Token{Kind: token.Ident, Span: sp, Name: name}
}
