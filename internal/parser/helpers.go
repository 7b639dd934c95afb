package parser

import (
	"fmt"

	"turingc/internal/cst"
	"turingc/internal/diag"
	"turingc/internal/source"
	"turingc/internal/token"
)

// fill grows the lookahead buffer until index n is populated.
func (p *Parser) fill(n int) {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
	}
}

// peek returns the next not-yet-consumed token without consuming it.
func (p *Parser) peek() token.Token {
	p.fill(0)
	return p.buf[0]
}

// peek2 returns the token after the next one, without consuming either.
// Used only for compound-assignment detection, which needs to see past
// the candidate operator to check for a following '=' (spec section
// 4.3's assignment grammar).
func (p *Parser) peek2() token.Token {
	p.fill(1)
	return p.buf[1]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atAny(kinds ...token.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// popFront removes and returns the next token, pulling from the lexer only
// once the lookahead buffer is empty.
func (p *Parser) popFront() token.Token {
	p.fill(0)
	tok := p.buf[0]
	p.buf = p.buf[1:]
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// advance consumes the next token and appends it to the innermost open CST
// node.
func (p *Parser) advance() token.Token {
	tok := p.popFront()
	p.b.PushToken(tok)
	return tok
}

// bumpRaw consumes the next token without touching the CST builder stack.
// Expression parsing uses this exclusively: expression nodes are assembled
// as detached cst.Node/Leaf values (see expr.go) and attached to the
// enclosing statement/type node with a single PushNode once complete,
// since Pratt parsing must be able to rewrap an already-parsed operand in
// a new binary/postfix node -- something the builder's Start-before-
// children stack discipline cannot express.
func (p *Parser) bumpRaw() token.Token {
	return p.popFront()
}

func (p *Parser) expectRaw(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.bumpRaw(), true
	}
	p.errorf(diag.SynExpectedToken, p.diagSpan(), "expected %s, found %s", k, p.peek().Kind)
	return token.Token{}, false
}

// bumpIf consumes and returns the next token if it has kind k.
func (p *Parser) bumpIf(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes the next token if it has kind k, otherwise reports a
// diagnostic naming what was expected and leaves the token unconsumed.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf(diag.SynExpectedToken, p.diagSpan(), "expected %s, found %s", k, p.peek().Kind)
	return token.Token{}, false
}

// diagSpan returns a usable span for an error at the current position: the
// next token's span, or a zero-width span just past the last consumed
// token when the stream has hit EOF.
func (p *Parser) diagSpan() source.Span {
	t := p.peek()
	if t.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return t.Span
}

func (p *Parser) errorf(code diag.Code, span source.Span, format string, args ...any) {
	if p.opts.MaxErrors > 0 && p.errCount >= p.opts.MaxErrors {
		return
	}
	p.errCount++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...), nil, nil)
	}
}

func (p *Parser) warnf(code diag.Code, span source.Span, format string, args ...any) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevWarning, span, fmt.Sprintf(format, args...), nil, nil)
	}
}

// pushRecovery adds stop as an extra recovery set for the duration of the
// caller's rule; the returned func must be deferred to pop it.
func (p *Parser) pushRecovery(stop ...token.Kind) func() {
	p.recovery = append(p.recovery, stop)
	return func() { p.recovery = p.recovery[:len(p.recovery)-1] }
}

func (p *Parser) inRecoverySet(k token.Kind) bool {
	for _, set := range p.recovery {
		for _, s := range set {
			if s == k {
				return true
			}
		}
	}
	return false
}

func containsKind(set []token.Kind, k token.Kind) bool {
	for _, s := range set {
		if s == k {
			return true
		}
	}
	return false
}

// recover implements spec section 4.3's error-recovery rule: if the
// current token is already a recovery point or starts a new statement, it
// stops without consuming anything; otherwise it consumes tokens (wrapping
// them in an ErrorNode) until it reaches one, guaranteeing forward progress
// since EOF always halts the loop.
func (p *Parser) recover(extra ...token.Kind) {
	if p.at(token.EOF) {
		return
	}
	if p.inRecoverySet(p.peek().Kind) || isStmtStarter(p.peek().Kind) || containsKind(extra, p.peek().Kind) {
		return
	}
	p.b.Start(cst.ErrorNode)
	for !p.at(token.EOF) &&
		!p.inRecoverySet(p.peek().Kind) &&
		!isStmtStarter(p.peek().Kind) &&
		!containsKind(extra, p.peek().Kind) {
		p.advance()
	}
	p.b.Finish()
}

// closeEmpty finishes a started node; if nothing was pushed to it the node
// is still closed (an empty node), keeping tree shape well-formed even when
// a rule fails immediately (spec section 4.3: "every started node is
// closed").
func (p *Parser) closeEmpty() *cst.Node { return p.b.Finish() }
