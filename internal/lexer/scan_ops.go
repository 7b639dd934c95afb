package lexer

import (
	"turingc/internal/diag"
	"turingc/internal/token"
)

// scanOperatorOrPunct scans one punctuation/operator token. Two-byte forms
// are tried greedily before falling back to their one-byte prefix.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start)}
	}

	switch {
	case lx.try2(':', '='):
		return emit(token.Assign)
	case lx.try2('.', '.'):
		return emit(token.Range)
	case lx.try2('*', '*'):
		return emit(token.Exp)
	case lx.try2('-', '>'):
		return emit(token.Deref)
	case lx.try2('=', '>'):
		return emit(token.Imply)
	case lx.try2('<', '='):
		return emit(token.LessEqu)
	case lx.try2('>', '='):
		return emit(token.GreaterEqu)
	case lx.try2('~', '='):
		return emit(token.NotEqu)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '~':
		return emit(token.Tilde)
	case '^':
		return emit(token.Caret)
	case '=':
		return emit(token.Equ)
	case '<':
		return emit(token.Less)
	case '>':
		return emit(token.Greater)
	case ':':
		return emit(token.Colon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case ';':
		return emit(token.Semicolon)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '#':
		return emit(token.Pound)
	case '@':
		return emit(token.At)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.ErrorTok, Span: sp}
	}
}
