package lexer

import (
	"turingc/internal/diag"
	"turingc/internal/token"
)

// collectLeadingTrivia gathers the run of whitespace and comments before
// the next significant token into lx.hold.
//
//   - ' ', '\t', '\r', '\n' coalesce into one TriviaWhitespace run
//   - '%' to end of line -> TriviaLineComment
//   - '/*' ... '*/' -> TriviaBlockComment, nestable; unterminated at EOF
//     is reported and the run still attached, so the CST stays lossless
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' && b2 != '\n' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaWhitespace, Span: sp})
			continue

		case b == '%':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp})
			continue

		case b == '/':
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '*' {
				lx.scanBlockCommentIntoHold(start)
				continue
			}
		}
		break
	}
}

func (lx *Lexer) scanBlockCommentIntoHold(start Mark) {
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaBlockComment, Span: sp})
}
