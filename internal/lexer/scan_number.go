package lexer

import (
	"strconv"
	"strings"

	"turingc/internal/diag"
	"turingc/internal/token"
)

// scanNumber implements the number shapes from spec section 4.2:
//
//	decimal+
//	decimal+ '#' alphanumeric+        (radix literal, base 2-36)
//	decimal+ '.' (decimal+)? ([eE][+-]? decimal+)?   (real literal)
//	decimal+ [eE][+-]? decimal+                      (real literal)
//
// A leading '.' form (".5") is routed here by the lexer only after it has
// confirmed a following digit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		return lx.scanRealTail(start)
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	switch lx.cursor.Peek() {
	case '#':
		return lx.scanRadixNumber(start)
	case '.':
		// A '.' that begins the ".." range punctuation ends the integer
		// ("1..10" is 1, "..", 10); any other '.' continues a real
		// literal, with or without fraction digits ("1." is a real).
		if _, next, ok := lx.cursor.Peek2(); ok && next == '.' {
			return lx.emitInt(start)
		}
		lx.cursor.Bump() // '.'
		return lx.scanRealTail(start)
	case 'e', 'E':
		lx.cursor.Bump()
		return lx.scanExponentTail(start, true)
	default:
		return lx.emitInt(start)
	}
}

func (lx *Lexer) scanRealTail(start Mark) token.Token {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		lx.cursor.Bump()
		return lx.scanExponentTail(start, false)
	}
	return lx.emitReal(start)
}

func (lx *Lexer) scanExponentTail(start Mark, sawDigitsBeforeDot bool) token.Token {
	_ = sawDigitsBeforeDot
	if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadRealLiteral, sp, "expected digit after exponent")
		return token.Token{Kind: token.RealLiteral, Span: sp, Real: 0.0}
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emitReal(start)
}

func (lx *Lexer) emitInt(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		lx.errLex(diag.LexIntLiteralTooLarge, sp, "integer literal is too large")
		return token.Token{Kind: token.NatLiteral, Span: sp, Nat: 0}
	}
	return token.Token{Kind: token.NatLiteral, Span: sp, Nat: n}
}

func (lx *Lexer) emitReal(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	f, err := strconv.ParseFloat(text, 64)
	// An out-of-range literal comes back as +/-Inf with ErrRange; let it
	// reach the range check below so it is reported as too large.
	if ne, ok := err.(*strconv.NumError); err != nil && !(ok && ne.Err == strconv.ErrRange) {
		lx.errLex(diag.LexBadRealLiteral, sp, "invalid real literal")
		return token.Token{Kind: token.RealLiteral, Span: sp, Real: 0.0}
	}
	if f > maxFiniteReal || f < -maxFiniteReal {
		lx.errLex(diag.LexRealLiteralTooLarge, sp, "real literal is too large")
		return token.Token{Kind: token.RealLiteral, Span: sp, Real: 0.0}
	}
	return token.Token{Kind: token.RealLiteral, Span: sp, Real: f}
}

// maxFiniteReal bounds detection of overflow-to-infinity; ParseFloat
// returns +/-Inf together with strconv.ErrRange for literals beyond
// float64 range, and emitReal passes that result on to this range check.
const maxFiniteReal = 1.7976931348623157e+308

// scanRadixNumber handles the "base#digits" form. The base is the decimal
// digits already consumed before '#'; digits after '#' are alphanumeric
// and interpreted in that base (2-36), matching the original compiler's
// make_number_radix.
func (lx *Lexer) scanRadixNumber(start Mark) token.Token {
	baseSpan := lx.cursor.SpanFrom(start)
	baseText := string(lx.file.Content[baseSpan.Start:baseSpan.End])
	lx.cursor.Bump() // '#'

	digitsStart := lx.cursor.Mark()
	for isAlnum(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	digitsSpan := lx.cursor.SpanFrom(digitsStart)
	sp := lx.cursor.SpanFrom(start)

	base, err := strconv.ParseUint(baseText, 10, 32)
	if err != nil || base < 2 || base > 36 {
		lx.errLex(diag.LexBadNumberBase, sp, "base for integer literal is not between 2 and 36")
		return token.Token{Kind: token.NatLiteral, Span: sp, Nat: 0}
	}

	digits := strings.ToLower(string(lx.file.Content[digitsSpan.Start:digitsSpan.End]))
	if digits == "" {
		lx.errLex(diag.LexBadNumberBase, sp, "missing digits for integer literal")
		return token.Token{Kind: token.NatLiteral, Span: sp, Nat: 0}
	}

	n, err := strconv.ParseUint(digits, int(base), 64)
	if err != nil {
		if strings.Contains(err.Error(), "value out of range") {
			lx.errLex(diag.LexIntLiteralTooLarge, sp, "integer literal is too large")
		} else {
			lx.errLex(diag.LexBadRadixDigit, sp, "digit is outside the specified base's allowed digits")
		}
		return token.Token{Kind: token.NatLiteral, Span: sp, Nat: 0}
	}
	return token.Token{Kind: token.NatLiteral, Span: sp, Nat: n}
}
