package parser

import (
	"turingc/internal/cst"
	"turingc/internal/diag"
	"turingc/internal/token"
)

// parseExpr is the Pratt/precedence-climbing entry point (spec section
// 4.3). minPrec is the lowest binary precedence the caller will accept;
// top-level callers pass 0 (below precImply) to parse a full expression.
func (p *Parser) parseExpr(minPrec int) *cst.Node {
	p.exprDepth++
	defer func() { p.exprDepth-- }()
	if p.exprDepth > p.opts.maxExprDepth() {
		p.errorf(diag.SynDepthExceeded, p.peek().Span, "expression nesting exceeds limit")
		return &cst.Node{Kind: cst.ErrorNode}
	}

	left := p.parseUnary()

	for {
		prec, rightAssoc, ok := binaryPrec(p.peek().Kind)
		if !ok || prec < minPrec {
			break
		}
		opTok := p.bumpRaw()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right := p.parseExpr(nextMin)
		left = &cst.Node{Kind: cst.BinaryExpr, Children: []cst.Element{left, &cst.Leaf{Tok: opTok}, right}}
	}
	return left
}

// parseUnary handles the prefix operators (not/~, unary +/-, #, prefix ^)
// and, once it reaches a primary, chains postfix call/dot/follow/deref
// operators -- all of which bind tighter than any binary operator (spec's
// Conversion < Deref < Call/Dot < Follow < Primary tail of the ladder).
func (p *Parser) parseUnary() *cst.Node {
	if operandPrec, ok := isPrefixUnary(p.peek().Kind); ok {
		opTok := p.bumpRaw()
		operand := p.parseExpr(operandPrec)
		kind := cst.UnaryExpr
		switch opTok.Kind {
		case token.Pound:
			kind = cst.ConversionExpr
		case token.Caret:
			kind = cst.FollowExpr
		}
		return &cst.Node{Kind: kind, Children: []cst.Element{&cst.Leaf{Tok: opTok}, operand}}
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix chains call/dot/follow/arrow-deref operators onto left,
// left-associatively, since they all bind tighter than the binary table.
func (p *Parser) parsePostfix(left *cst.Node) *cst.Node {
	for {
		switch p.peek().Kind {
		case token.LParen:
			lparen := p.bumpRaw()
			args := p.parseArgList()
			rparen, _ := p.expectRaw(token.RParen)
			left = &cst.Node{Kind: cst.CallExpr, Children: []cst.Element{left, &cst.Leaf{Tok: lparen}, args, &cst.Leaf{Tok: rparen}}}
		case token.Dot:
			dot := p.bumpRaw()
			ident, _ := p.expectRaw(token.Ident)
			left = &cst.Node{Kind: cst.DotExpr, Children: []cst.Element{left, &cst.Leaf{Tok: dot}, &cst.Leaf{Tok: ident}}}
		case token.Caret:
			caret := p.bumpRaw()
			left = &cst.Node{Kind: cst.FollowExpr, Children: []cst.Element{left, &cst.Leaf{Tok: caret}}}
		case token.Deref:
			arrow := p.bumpRaw()
			ident, _ := p.expectRaw(token.Ident)
			left = &cst.Node{Kind: cst.DerefExpr, Children: []cst.Element{left, &cst.Leaf{Tok: arrow}, &cst.Leaf{Tok: ident}}}
		default:
			return left
		}
	}
}

// parseArgList parses a comma-separated, possibly-empty expression list up
// to (but not consuming) the closing ')'.
func (p *Parser) parseArgList() *cst.Node {
	pop := p.pushRecovery(token.Comma, token.RParen)
	defer pop()

	node := &cst.Node{Kind: cst.ArgList}
	if p.at(token.RParen) || p.at(token.EOF) {
		return node
	}
	for {
		node.Children = append(node.Children, p.parseExpr(0))
		comma, ok := p.bumpIfRaw(token.Comma)
		if !ok {
			break
		}
		node.Children = append(node.Children, &cst.Leaf{Tok: comma})
		if p.at(token.RParen) {
			break
		}
	}
	return node
}

func (p *Parser) bumpIfRaw(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.bumpRaw(), true
	}
	return token.Token{}, false
}

// parsePrimary parses a literal, name reference, or parenthesized
// expression. On failure it reports a diagnostic and returns an empty
// ErrorNode (lowered to Expr::Missing, spec section 4.4).
func (p *Parser) parsePrimary() *cst.Node {
	switch p.peek().Kind {
	case token.Ident:
		tok := p.bumpRaw()
		return &cst.Node{Kind: cst.NameExpr, Children: []cst.Element{&cst.Leaf{Tok: tok}}}
	case token.NatLiteral, token.RealLiteral, token.StringLiteral, token.CharLiteral,
		token.KwTrue, token.KwFalse, token.KwNil:
		tok := p.bumpRaw()
		return &cst.Node{Kind: cst.LiteralExpr, Children: []cst.Element{&cst.Leaf{Tok: tok}}}
	case token.LParen:
		lparen := p.bumpRaw()
		inner := p.parseExpr(0)
		rparen, _ := p.expectRaw(token.RParen)
		return &cst.Node{Kind: cst.ParenExpr, Children: []cst.Element{&cst.Leaf{Tok: lparen}, inner, &cst.Leaf{Tok: rparen}}}
	default:
		p.errorf(diag.SynUnexpectedToken, p.diagSpan(), "expected expression, found %s", p.peek().Kind)
		if !p.at(token.EOF) && !p.inRecoverySet(p.peek().Kind) && !isStmtStarter(p.peek().Kind) {
			p.bumpRaw()
		}
		return &cst.Node{Kind: cst.ErrorNode}
	}
}
