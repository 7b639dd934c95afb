package parser

import (
	"turingc/internal/cst"
	"turingc/internal/diag"
	"turingc/internal/token"
)

// isStmtStarter reports whether k begins a new statement, used by the
// error-recovery routine to know when to stop skipping tokens (spec
// section 4.3's recovery rule).
func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwConst, token.KwVar, token.KwType, token.KwProcedure, token.KwFunction,
		token.KwBegin, token.KwIf, token.KwLoop,
		token.KwFor, token.KwCase, token.KwInvariant, token.KwAssert, token.KwSignal,
		token.KwPause, token.KwResult, token.KwReturn, token.KwChecked, token.KwUnchecked,
		token.KwPut, token.KwGet, token.KwExit, token.Ident, token.Caret:
		return true
	default:
		return false
	}
}

// parseStmtSeq parses statements until EOF or a token in stop is reached,
// guaranteeing forward progress the way the teacher's top-level loop does:
// if a statement rule consumes nothing, the sequence force-advances past
// the stuck token.
func (p *Parser) parseStmtSeq(stop []token.Kind) {
	pop := p.pushRecovery(stop...)
	defer pop()
	for !p.at(token.EOF) && !containsKind(stop, p.peek().Kind) {
		before := p.peek()
		p.parseStmt()
		if !p.at(token.EOF) && p.peek().Kind == before.Kind && p.peek().Span == before.Span {
			p.advance()
		}
	}
}

func (p *Parser) parseStmt() {
	p.stmtDepth++
	defer func() { p.stmtDepth-- }()
	if p.stmtDepth > p.opts.maxStmtDepth() {
		p.errorf(diag.SynDepthExceeded, p.peek().Span, "statement nesting exceeds limit")
		p.recover()
		return
	}

	switch p.peek().Kind {
	case token.KwConst, token.KwVar:
		p.parseConstOrVarDecl()
	case token.KwType:
		p.parseTypeDecl()
	case token.KwProcedure, token.KwFunction:
		p.parseSubprogramDecl()
	case token.KwBegin:
		p.parseBlockStmt()
	case token.KwIf:
		p.parseIfStmt()
	case token.KwLoop:
		p.parseLoopStmt()
	case token.KwFor:
		p.parseForStmt()
	case token.KwCase:
		p.parseCaseStmt()
	case token.KwInvariant:
		p.parseExprKeywordStmt(cst.InvariantStmt)
	case token.KwAssert:
		p.parseExprKeywordStmt(cst.AssertStmt)
	case token.KwSignal:
		p.parseExprKeywordStmt(cst.SignalStmt)
	case token.KwPause:
		p.parseExprKeywordStmt(cst.PauseStmt)
	case token.KwResult:
		p.parseExprKeywordStmt(cst.ResultStmt)
	case token.KwReturn:
		p.parseBareKeywordStmt(cst.ReturnStmt)
	case token.KwChecked:
		p.parseCheckedBlock(cst.CheckedStmt, token.KwChecked)
	case token.KwUnchecked:
		p.parseCheckedBlock(cst.UncheckedStmt, token.KwUnchecked)
	case token.KwPut:
		p.parsePutOrGetStmt(cst.PutStmt)
	case token.KwGet:
		p.parsePutOrGetStmt(cst.GetStmt)
	case token.KwExit:
		p.parseExitStmt()
	case token.Ident, token.Caret:
		p.parseAssignOrCallStmt()
	default:
		p.errorf(diag.SynUnexpectedToken, p.diagSpan(), "%s does not begin a statement", p.peek().Kind)
		p.recover()
	}
}

// expectEndToken accepts either the single-word closer (e.g. "endif") or
// "end" followed by tail (e.g. "end if"), per spec section 4.3's note that
// the two spellings are interchangeable.
func (p *Parser) expectEndToken(shortForm, tail token.Kind) {
	if _, ok := p.bumpIf(shortForm); ok {
		return
	}
	if _, ok := p.expect(token.KwEnd); ok {
		p.expect(tail)
		return
	}
}

func (p *Parser) parseBlockStmt() {
	p.b.Start(cst.BlockStmt)
	p.advance() // begin
	p.parseStmtSeq([]token.Kind{token.KwEnd})
	p.expect(token.KwEnd)
	p.finishStmt()
}

func (p *Parser) parseIfStmt() {
	p.b.Start(cst.IfStmt)
	p.advance() // if
	p.b.PushNode(p.parseExpr(0))
	p.expect(token.KwThen)
	bodyStop := []token.Kind{token.KwElsif, token.KwElse, token.KwEndif, token.KwEnd}
	p.parseStmtSeq(bodyStop)
	for p.at(token.KwElsif) {
		p.b.Start(cst.ElsifClause)
		p.advance()
		p.b.PushNode(p.parseExpr(0))
		p.expect(token.KwThen)
		p.parseStmtSeq(bodyStop)
		p.b.Finish()
	}
	if p.at(token.KwElse) {
		p.b.Start(cst.ElseClause)
		p.advance()
		p.parseStmtSeq([]token.Kind{token.KwEndif, token.KwEnd})
		p.b.Finish()
	}
	p.expectEndToken(token.KwEndif, token.KwIf)
	p.finishStmt()
}

func (p *Parser) parseLoopStmt() {
	p.b.Start(cst.LoopStmt)
	p.advance() // loop
	p.parseStmtSeq([]token.Kind{token.KwEndloop, token.KwEnd})
	p.expectEndToken(token.KwEndloop, token.KwLoop)
	p.finishStmt()
}

func (p *Parser) parseExitStmt() {
	p.b.Start(cst.ExitStmt)
	p.advance() // exit
	if _, ok := p.bumpIf(token.KwWhen); ok {
		p.b.PushNode(p.parseExpr(0))
	}
	p.finishStmt()
}

// parseForStmt parses "for [decreasing] name : start..end [by step] ...
// endfor" (spec section 4.3), reusing parseRangeOrNameType for the bound
// since its shape -- "expr .. expr" -- is identical to a range type.
func (p *Parser) parseForStmt() {
	p.b.Start(cst.ForStmt)
	p.advance() // for
	p.bumpIf(token.KwDecreasing)
	p.expect(token.Ident)
	p.expect(token.Colon)
	p.b.PushNode(p.parseRangeOrNameType())
	if _, ok := p.bumpIf(token.KwBy); ok {
		p.b.PushNode(p.parseExpr(0))
	}
	p.parseStmtSeq([]token.Kind{token.KwEndfor, token.KwEnd})
	p.expectEndToken(token.KwEndfor, token.KwFor)
	p.finishStmt()
}

// parseCaseStmt parses "case expr of (label exprlist : stmts)* endcase".
func (p *Parser) parseCaseStmt() {
	p.b.Start(cst.CaseStmt)
	p.advance() // case
	p.b.PushNode(p.parseExpr(0))
	p.expect(token.KwOf)

	armStop := []token.Kind{token.KwLabel, token.KwEndcase, token.KwEnd}
	pop := p.pushRecovery(armStop...)
	for p.at(token.KwLabel) {
		p.b.Start(cst.CaseArm)
		p.advance() // label
		labels := &cst.Node{Kind: cst.ExprList}
		if !p.at(token.Colon) {
			for {
				labels.Children = append(labels.Children, p.parseExpr(0))
				comma, ok := p.bumpIfRaw(token.Comma)
				if !ok {
					break
				}
				labels.Children = append(labels.Children, &cst.Leaf{Tok: comma})
			}
		}
		p.b.PushNode(labels)
		p.expect(token.Colon)
		p.parseStmtSeq(armStop)
		p.b.Finish()
	}
	pop()
	p.expectEndToken(token.KwEndcase, token.KwCase)
	p.finishStmt()
}

func (p *Parser) parseExprKeywordStmt(kind cst.Kind) {
	p.b.Start(kind)
	p.advance()
	p.b.PushNode(p.parseExpr(0))
	p.finishStmt()
}

func (p *Parser) parseBareKeywordStmt(kind cst.Kind) {
	p.b.Start(kind)
	p.advance()
	p.finishStmt()
}

// parseCheckedBlock parses "checked ... end checked" / the unchecked
// equivalent; the trailing repeat of the keyword is optional.
func (p *Parser) parseCheckedBlock(kind cst.Kind, kw token.Kind) {
	p.b.Start(kind)
	p.advance()
	p.parseStmtSeq([]token.Kind{token.KwEnd})
	p.expect(token.KwEnd)
	p.bumpIf(kw)
	p.finishStmt()
}

// parsePutOrGetStmt parses Turing's I/O statements: a keyword followed by
// a comma-separated expression list (put writes values; get reads into
// reference expressions). Stream selectors and field-width specifiers are
// out of scope (spec.md's Non-goals exclude I/O/runtime semantics beyond
// what's needed to round-trip syntax).
func (p *Parser) parsePutOrGetStmt(kind cst.Kind) {
	p.b.Start(kind)
	p.advance()
	items := &cst.Node{Kind: cst.ExprList}
	for {
		items.Children = append(items.Children, p.parseExpr(0))
		comma, ok := p.bumpIfRaw(token.Comma)
		if !ok {
			break
		}
		items.Children = append(items.Children, &cst.Leaf{Tok: comma})
	}
	p.b.PushNode(items)
	p.finishStmt()
}

// parseAssignOrCallStmt parses spec section 4.3's assignment grammar:
// "ref_expr (op '=')? ':=' expr" for plain assignment, or a compound form
// spelled as a candidate operator immediately followed by a bare '=' (e.g.
// "x + = 1"); a bare reference with neither is a procedure call. Grounded
// on original_source's stmt_reference/is_compound_assignment.
func (p *Parser) parseAssignOrCallStmt() {
	p.b.Start(cst.AssignStmt)
	ref := p.parseExpr(precConversion + 1)
	p.b.PushNode(ref)

	switch {
	case isCompoundAssignOp(p.peek().Kind) && p.peek2().Kind == token.Equ:
		opTok := p.bumpRaw()
		eqTok := p.bumpRaw()
		p.b.PushNode(&cst.Node{Kind: cst.ErrorNode, Children: []cst.Element{&cst.Leaf{Tok: opTok}, &cst.Leaf{Tok: eqTok}}})
		p.b.PushNode(p.parseExpr(0))
	case p.at(token.Assign):
		assignTok := p.bumpRaw()
		p.b.PushNode(&cst.Node{Kind: cst.ErrorNode, Children: []cst.Element{&cst.Leaf{Tok: assignTok}}})
		p.b.PushNode(p.parseExpr(0))
	case p.at(token.Equ):
		p.warnf(diag.SynEqualsForAssign, p.peek().Span, "'=' used where ':=' was expected")
		eqTok := p.bumpRaw()
		p.b.PushNode(&cst.Node{Kind: cst.ErrorNode, Children: []cst.Element{&cst.Leaf{Tok: eqTok}}})
		p.b.PushNode(p.parseExpr(0))
	default:
		// Bare reference: a procedure call statement, not an
		// assignment. Re-tag the node now that its shape is known
		// rather than re-parsing the reference under a different
		// node kind.
		p.bumpIf(token.Semicolon)
		n := p.b.Finish()
		n.Kind = cst.ProcCallStmt
		return
	}
	p.finishStmt()
}
