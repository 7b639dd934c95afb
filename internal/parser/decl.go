package parser

import (
	"turingc/internal/cst"
	"turingc/internal/diag"
	"turingc/internal/token"
)

// parseConstOrVarDecl parses spec section 4.3's const/var declaration:
// optional pervasive/register attributes, a name list, an optional ':
// type', and an optional ':=' (or '=', rewritten with a warning)
// initializer.
func (p *Parser) parseConstOrVarDecl() {
	p.b.Start(declKind(p.peek().Kind))
	kw := p.advance()

	for p.atAny(token.KwPervasive, token.Star, token.KwRegister) {
		p.advance()
	}

	names := p.parseNameList()
	p.b.PushNode(names)

	hasType := false
	if _, ok := p.bumpIf(token.Colon); ok {
		hasType = true
		p.b.PushNode(p.parseType())
	}

	hasInit := false
	if p.at(token.Assign) {
		p.advance()
		hasInit = true
	} else if p.at(token.Equ) {
		p.warnf(diag.SynEqualsForAssign, p.peek().Span, "'=' used where ':=' was expected")
		p.advance() // kept as Equ in the tree; lowering treats it as Assign
		hasInit = true
	}
	if hasInit {
		p.b.PushNode(p.parseExpr(0))
	}

	if kw.Kind == token.KwConst && !hasInit {
		p.errorf(diag.SynConstNoInit, kw.Span, "const declaration requires an initializer")
	}
	if !hasType && !hasInit {
		p.errorf(diag.SynUntypedNoInit, kw.Span, "declaration without a type requires an initializer")
	}

	p.finishStmt()
}

func declKind(k token.Kind) cst.Kind {
	if k == token.KwConst {
		return cst.ConstDecl
	}
	return cst.VarDecl
}

// parseTypeDecl parses "type attrs? name ':' (type | forward)" (spec
// section 4.3). Forward resolution -- matching a later `type T : ty` to an
// earlier `type T : forward` -- is a symbol-table concern (spec section
// 4.7), not the parser's.
func (p *Parser) parseTypeDecl() {
	p.b.Start(cst.TypeDecl)
	p.advance() // 'type'

	for p.atAny(token.KwPervasive, token.Star) {
		p.advance()
	}

	p.expect(token.Ident)
	if _, ok := p.expect(token.Colon); ok {
		if _, isForward := p.bumpIf(token.KwForward); !isForward {
			p.b.PushNode(p.parseType())
		}
	}
	p.finishStmt()
}

// finishStmt consumes a trailing ';' if present (Turing separates
// statements by newline or ';'; both are accepted) and closes the node
// opened by the caller.
func (p *Parser) finishStmt() {
	p.bumpIf(token.Semicolon)
	p.b.Finish()
}

// parseSubprogramDecl parses a procedure or function declaration: the
// keyword, a name, an optional parenthesized parameter list, (functions
// only) a ':' result type, a statement body, and a closing 'end' plus the
// repeated name. The header's parameter-list/result-type shape mirrors
// parseFuncOrProcType's handling of the corresponding type grammar (spec
// section 4.3's Type grammar), since both describe the same signature.
func (p *Parser) parseSubprogramDecl() {
	isFunc := p.at(token.KwFunction)
	kind := cst.ProcDecl
	if isFunc {
		kind = cst.FuncDecl
	}
	p.b.Start(kind)
	p.advance()           // 'function' / 'procedure'
	p.expect(token.Ident) // name; matching it against the closing name is a validator concern

	if p.at(token.LParen) {
		p.b.PushNode(p.parseParamList())
	}
	if isFunc {
		p.expect(token.Colon)
		p.b.PushNode(p.parseType())
	}

	p.parseStmtSeq([]token.Kind{token.KwEnd})
	p.expect(token.KwEnd)
	p.bumpIf(token.Ident)
	p.finishStmt()
}
