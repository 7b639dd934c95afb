package hir

import (
	"turingc/internal/cst"
	"turingc/internal/ids"
	"turingc/internal/symbols"
	"turingc/internal/token"
	"turingc/internal/types"
)

// Lower traverses root (a SourceFile-kind cst.Node produced by
// internal/parser) and emits HIR into a fresh Unit. Lowering is total:
// every well-formed syntax node maps to a HIR node, and every node shape
// outside HIR's narrower variant sets maps to Missing/TypeError rather
// than being dropped (spec section 4.4: "lowering is total").
func Lower(root *cst.Node) *Unit {
	u := NewUnit()
	u.Top = lowerStmtSlice(u, root.ChildNodes())
	return u
}

func lowerStmtSlice(u *Unit, nodes []*cst.Node) []ids.StmtIdx {
	out := make([]ids.StmtIdx, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, lowerStmt(u, n))
	}
	return out
}

// primitiveKeyword maps a primitive-type keyword token to its
// PrimitiveKind, covering the full set parser/type.go's
// isPrimitiveTypeKeyword recognizes plus the two unsized spellings of
// string/char (parseSizedTail falls back to PrimitiveType for those).
func primitiveKeyword(k token.Kind) types.PrimitiveKind {
	switch k {
	case token.KwInt:
		return types.Int
	case token.KwInt1:
		return types.Int1
	case token.KwInt2:
		return types.Int2
	case token.KwInt4:
		return types.Int4
	case token.KwNat:
		return types.Nat
	case token.KwNat1:
		return types.Nat1
	case token.KwNat2:
		return types.Nat2
	case token.KwNat4:
		return types.Nat4
	case token.KwReal:
		return types.Real
	case token.KwReal4:
		return types.Real4
	case token.KwReal8:
		return types.Real8
	case token.KwBoolean:
		return types.Boolean
	case token.KwAddressint:
		return types.Addressint
	case token.KwString:
		return types.Str
	case token.KwChar:
		return types.Char
	default:
		return types.Invalid
	}
}

// isTypeNodeKind reports whether k is a type-grammar production, used to
// tell a declaration's optional type tail apart from its optional
// initializer/step/result sibling among a node's ChildNodes (both share
// the same cst.Element slot and are disambiguated only by kind).
func isTypeNodeKind(k cst.Kind) bool {
	switch k {
	case cst.NameType, cst.PrimitiveType, cst.SizedStringType, cst.SizedCharType,
		cst.PointerType, cst.ArrayType, cst.FlexibleArrayType, cst.SetType,
		cst.EnumType, cst.RangeType, cst.FunctionType, cst.ProcedureType,
		cst.CollectionType, cst.ConditionType, cst.RecordType, cst.UnionType:
		return true
	default:
		return false
	}
}

// firstToken returns the first leaf token of kind k among n's direct
// children, used to recover a keyword/identifier the builder attached as
// a Leaf sibling rather than a Node (attribute keywords, names).
func firstToken(n *cst.Node, k token.Kind) (token.Token, bool) {
	for _, tok := range n.Tokens() {
		if tok.Kind == k {
			return tok, true
		}
	}
	return token.Token{}, false
}

func hasToken(n *cst.Node, k token.Kind) bool {
	_, ok := firstToken(n, k)
	return ok
}

// lowerType lowers a type-grammar CST node to a TypeRef, returning a bare
// Primitive ref for primitive leaves and declaring a new arena entry for
// every other shape, sized string/char included. Constructs outside spec's
// closed Ty set (collection, condition, record, union) have no HIR
// representation and lower to the TypeError placeholder, the same way
// an out-of-set Expr shape lowers to Missing.
func lowerType(u *Unit, n *cst.Node) types.TypeRef {
	switch n.Kind {
	case cst.PrimitiveType:
		tok := n.Tokens()[0]
		return types.PrimRef(primitiveKeyword(tok.Kind))

	case cst.SizedStringType, cst.SizedCharType:
		kind := types.KindSizedString
		if n.Kind == cst.SizedCharType {
			kind = types.KindSizedChar
		}
		sizeNode := n.ChildNodes()[0]
		isStar := sizeNode.Kind == cst.LiteralExpr && len(sizeNode.Tokens()) > 0 && sizeNode.Tokens()[0].Kind == token.Star
		ty := types.Type{Kind: kind, Span: n.Span(), IsStar: isStar}
		if !isStar {
			ty.Size = lowerExpr(u, sizeNode)
		}
		return types.NamedRef(u.Types.Declare(ty))

	case cst.NameType:
		nameExpr := n.ChildNodes()[0]
		idx := u.Types.Declare(types.Type{Kind: types.KindName, Span: n.Span(), NameRef: lowerExpr(u, nameExpr)})
		return types.NamedRef(idx)

	case cst.PointerType:
		target := n.ChildNodes()[0]
		idx := u.Types.Declare(types.Type{
			Kind:      types.KindPointer,
			Span:      n.Span(),
			Unchecked: hasToken(n, token.KwUnchecked),
			To:        lowerType(u, target),
		})
		return types.NamedRef(idx)

	case cst.ArrayType, cst.FlexibleArrayType:
		children := n.ChildNodes()
		rangesList, elemNode := children[0], children[1]
		var ranges []types.TypeRef
		for _, r := range rangesList.ChildNodes() {
			ranges = append(ranges, lowerType(u, r))
		}
		idx := u.Types.Declare(types.Type{
			Kind:       types.KindArray,
			Span:       n.Span(),
			Ranges:     ranges,
			Elem:       lowerType(u, elemNode),
			IsFlexible: n.Kind == cst.FlexibleArrayType,
		})
		return types.NamedRef(idx)

	case cst.SetType:
		idxNode := n.ChildNodes()[0]
		idx := u.Types.Declare(types.Type{Kind: types.KindSet, Span: n.Span(), Index: lowerType(u, idxNode)})
		return types.NamedRef(idx)

	case cst.EnumType:
		fieldsNode := n.ChildNodes()[0]
		enumIdx := u.Types.Declare(types.Type{Kind: types.KindEnum, Span: n.Span()})
		var fieldIDs []ids.DefID
		ordinal := 0
		for _, tok := range fieldsNode.Tokens() {
			if tok.Kind != token.Ident {
				continue
			}
			fieldIdx := u.Types.Declare(types.Type{Kind: types.KindEnumField, Span: tok.Span, Parent: enumIdx, Ordinal: ordinal})
			defID, _ := u.Scope.Declare(tok.Name, tok.Span, symbols.DeclareAttrs{
				Type:    types.NamedRef(fieldIdx),
				IsConst: true,
			})
			fieldIDs = append(fieldIDs, defID)
			ordinal++
		}
		enumTy := u.Types.Get(enumIdx)
		enumTy.Fields = fieldIDs
		return types.NamedRef(enumIdx)

	case cst.RangeType:
		children := n.ChildNodes()
		left, right := children[0], children[1]
		end := ids.NoExprIdx
		if !(right.Kind == cst.LiteralExpr && len(right.Tokens()) > 0 && right.Tokens()[0].Kind == token.Star) {
			end = lowerExpr(u, right)
		}
		idx := u.Types.Declare(types.Type{Kind: types.KindRange, Span: n.Span(), Start: lowerExpr(u, left), End: end})
		return types.NamedRef(idx)

	case cst.FunctionType, cst.ProcedureType:
		var params []types.Param
		var result types.TypeRef
		for _, c := range n.ChildNodes() {
			if c.Kind == cst.ParamList {
				params = lowerParamTypes(u, c)
				continue
			}
			if isTypeNodeKind(c.Kind) {
				result = lowerType(u, c)
			}
		}
		idx := u.Types.Declare(types.Type{
			Kind:       types.KindFunction,
			Span:       n.Span(),
			Params:     params,
			Result:     result,
			IsFunction: n.Kind == cst.FunctionType,
		})
		return types.NamedRef(idx)

	default:
		// CollectionType, ConditionType, RecordType, UnionType, and any
		// recovery shape: outside the closed Ty set.
		return types.TypeError
	}
}

// lowerParamTypes extracts just the TypeRefs of a ParamList for use
// inside a function/procedure type descriptor (spec section 3's
// "function(params[]?, result?)"); the parameter names themselves only
// matter when the list belongs to a Subprogram declaration, handled
// separately by lowerParamDecls.
func lowerParamTypes(u *Unit, list *cst.Node) []types.Param {
	var out []types.Param
	for _, c := range list.ChildNodes() {
		if c.Kind != cst.Param {
			continue
		}
		nameList := c.ChildNodes()[0]
		typeNode := c.ChildNodes()[len(c.ChildNodes())-1]
		ty := lowerType(u, typeNode)
		for _, tok := range nameList.Tokens() {
			if tok.Kind == token.Ident {
				out = append(out, types.Param{Name: tok.Name, Type: ty})
			}
		}
	}
	return out
}

// lowerParamDecls declares each parameter name in the current (already
// pushed) scope, returning their DefIds in order.
func lowerParamDecls(u *Unit, list *cst.Node) []ids.DefID {
	var out []ids.DefID
	for _, c := range list.ChildNodes() {
		if c.Kind != cst.Param {
			continue
		}
		nameList := c.ChildNodes()[0]
		typeNode := c.ChildNodes()[len(c.ChildNodes())-1]
		ty := lowerType(u, typeNode)
		for _, tok := range nameList.Tokens() {
			if tok.Kind != token.Ident {
				continue
			}
			id, _ := u.Scope.Declare(tok.Name, tok.Span, symbols.DeclareAttrs{Type: ty})
			out = append(out, id)
		}
	}
	return out
}

// lowerExpr lowers an expression-grammar CST node into the expr arena.
// Shapes outside HIR's closed Expr set (call, dotted reference, pointer
// follow/deref, explicit conversion) lower to Missing.
func lowerExpr(u *Unit, n *cst.Node) ids.ExprIdx {
	switch n.Kind {
	case cst.NameExpr:
		tok := n.Tokens()[0]
		def, _ := u.Scope.Use(tok.Name, tok.Span)
		return u.Exprs.alloc(Expr{Kind: ExprName, Span: n.Span(), Def: def})

	case cst.LiteralExpr:
		tok := n.Tokens()[0]
		e := Expr{Kind: ExprLiteral, Span: n.Span()}
		switch tok.Kind {
		case token.NatLiteral:
			e.LitKind, e.IntVal = LitInt, tok.Nat
		case token.RealLiteral:
			e.LitKind, e.RealVal = LitReal, tok.Real
		case token.StringLiteral:
			e.LitKind, e.StrVal = LitString, tok.Str
		case token.CharLiteral:
			e.LitKind, e.CharVal = LitChar, tok.Char
		case token.KwTrue:
			e.LitKind, e.BoolVal = LitBool, true
		case token.KwFalse:
			e.LitKind, e.BoolVal = LitBool, false
		default:
			// KwNil and the sized-type '*' marker have no HIR literal
			// representation.
			e.Kind = ExprMissing
		}
		return u.Exprs.alloc(e)

	case cst.ParenExpr:
		inner := n.ChildNodes()[0]
		return u.Exprs.alloc(Expr{Kind: ExprParen, Span: n.Span(), Inner: lowerExpr(u, inner)})

	case cst.BinaryExpr:
		children := n.ChildNodes()
		opTok := n.Tokens()[0]
		return u.Exprs.alloc(Expr{
			Kind: ExprBinary, Span: n.Span(),
			Op: opTok.Kind, OpSpan: opTok.Span,
			LHS: lowerExpr(u, children[0]), RHS: lowerExpr(u, children[1]),
		})

	case cst.UnaryExpr:
		operand := n.ChildNodes()[0]
		opTok := n.Tokens()[0]
		return u.Exprs.alloc(Expr{
			Kind: ExprUnary, Span: n.Span(),
			Op: opTok.Kind, OpSpan: opTok.Span,
			RHS: lowerExpr(u, operand),
		})

	default:
		// CallExpr, DotExpr, DerefExpr, FollowExpr, ConversionExpr, and
		// any recovery shape: outside the closed Expr set.
		return u.Exprs.alloc(Expr{Kind: ExprMissing, Span: n.Span()})
	}
}

// lowerExprList lowers an ExprList node's expression children in order,
// ignoring the comma leaves interleaved between them.
func lowerExprList(u *Unit, list *cst.Node) []ids.ExprIdx {
	var out []ids.ExprIdx
	for _, c := range list.ChildNodes() {
		out = append(out, lowerExpr(u, c))
	}
	return out
}

// declOrInitTail splits a ConstDecl/VarDecl's trailing ChildNodes (after
// the NameList) into its optional type and optional initializer, which
// share one slot in the CST and are told apart only by kind.
func declOrInitTail(rest []*cst.Node) (typeNode, initNode *cst.Node) {
	for _, c := range rest {
		if isTypeNodeKind(c.Kind) {
			typeNode = c
		} else {
			initNode = c
		}
	}
	return
}

func lowerStmt(u *Unit, n *cst.Node) ids.StmtIdx {
	switch n.Kind {
	case cst.ConstDecl, cst.VarDecl:
		return lowerConstVarDecl(u, n)
	case cst.TypeDecl:
		return lowerTypeDecl(u, n)
	case cst.ProcDecl, cst.FuncDecl:
		return lowerSubprogramDecl(u, n)
	case cst.BlockStmt:
		return lowerBlock(u, n)
	case cst.AssignStmt:
		return lowerAssign(u, n)
	case cst.ProcCallStmt:
		callee := n.ChildNodes()[0]
		return u.Stmts.alloc(Stmt{Kind: StmtProcCall, Span: n.Span(), Expr: lowerExpr(u, callee)})
	case cst.IfStmt:
		return lowerIf(u, n)
	case cst.LoopStmt:
		u.Scope.PushScope(symbols.ScopeBlock)
		body := lowerStmtSlice(u, n.ChildNodes())
		u.Scope.PopScope()
		return u.Stmts.alloc(Stmt{Kind: StmtLoop, Span: n.Span(), Body: body})
	case cst.ExitStmt:
		when := ids.NoExprIdx
		if cs := n.ChildNodes(); len(cs) > 0 {
			when = lowerExpr(u, cs[0])
		}
		return u.Stmts.alloc(Stmt{Kind: StmtExit, Span: n.Span(), When: when})
	case cst.ForStmt:
		return lowerFor(u, n)
	case cst.CaseStmt:
		return lowerCase(u, n)
	case cst.InvariantStmt, cst.AssertStmt, cst.SignalStmt, cst.PauseStmt, cst.ResultStmt:
		expr := n.ChildNodes()[0]
		return u.Stmts.alloc(Stmt{Kind: StmtExprKeyword, Span: n.Span(), Keyword: keywordForExprStmt(n.Kind), Expr: lowerExpr(u, expr)})
	case cst.ReturnStmt:
		return u.Stmts.alloc(Stmt{Kind: StmtReturn, Span: n.Span()})
	case cst.CheckedStmt, cst.UncheckedStmt:
		u.Scope.PushScope(symbols.ScopeBlock)
		body := lowerStmtSlice(u, n.ChildNodes())
		u.Scope.PopScope()
		kw := token.KwChecked
		if n.Kind == cst.UncheckedStmt {
			kw = token.KwUnchecked
		}
		return u.Stmts.alloc(Stmt{Kind: StmtChecked, Span: n.Span(), Keyword: kw, Body: body})
	case cst.PutStmt, cst.GetStmt:
		kind := StmtPut
		if n.Kind == cst.GetStmt {
			kind = StmtGet
		}
		items := lowerExprList(u, n.ChildNodes()[0])
		return u.Stmts.alloc(Stmt{Kind: kind, Span: n.Span(), Items: items})
	default:
		return u.Stmts.alloc(Stmt{Kind: StmtMissing, Span: n.Span()})
	}
}

// keywordForExprStmt recovers which keyword an ExprKeyword statement
// represents from its CST kind, since the node itself keeps the keyword
// only as an untyped leaf token.
func keywordForExprStmt(k cst.Kind) token.Kind {
	switch k {
	case cst.InvariantStmt:
		return token.KwInvariant
	case cst.AssertStmt:
		return token.KwAssert
	case cst.SignalStmt:
		return token.KwSignal
	case cst.PauseStmt:
		return token.KwPause
	case cst.ResultStmt:
		return token.KwResult
	default:
		return token.Invalid
	}
}

func lowerConstVarDecl(u *Unit, n *cst.Node) ids.StmtIdx {
	isConst := n.Kind == cst.ConstDecl
	children := n.ChildNodes()
	namesList := children[0]
	typeNode, initNode := declOrInitTail(children[1:])

	isPervasive := hasToken(n, token.KwPervasive) || hasToken(n, token.Star)

	var declaredType types.TypeRef
	tail := TailInvalid
	if typeNode != nil {
		declaredType = lowerType(u, typeNode)
		tail = TailTypeSpec
	}

	var names []ids.DefID
	for _, tok := range namesList.Tokens() {
		if tok.Kind != token.Ident {
			continue
		}
		id, _ := u.Scope.Declare(tok.Name, tok.Span, symbols.DeclareAttrs{
			Type:        declaredType,
			IsConst:     isConst,
			IsPervasive: isPervasive,
		})
		names = append(names, id)
	}

	// The initializer is lowered after the names are declared, so a
	// self-reference such as `const a := a` resolves to the new binding
	// and constant evaluation reports it as a cycle.
	var initIdx ids.ExprIdx
	if initNode != nil {
		initIdx = lowerExpr(u, initNode)
		if tail == TailTypeSpec {
			tail = TailBoth
		} else {
			tail = TailInitExpr
		}
	}

	return u.Stmts.alloc(Stmt{
		Kind: StmtConstVar, Span: n.Span(),
		Names: names, IsConst: isConst,
		Tail: tail, TailType: declaredType, TailInit: initIdx,
	})
}

func lowerTypeDecl(u *Unit, n *cst.Node) ids.StmtIdx {
	nameTok, _ := firstToken(n, token.Ident)
	isForward := hasToken(n, token.KwForward)

	var declType types.TypeRef
	if children := n.ChildNodes(); len(children) > 0 {
		declType = lowerType(u, children[0])
	} else if isForward {
		idx := u.Types.Declare(types.Type{Kind: types.KindForward, Span: n.Span(), Resolved: false})
		declType = types.NamedRef(idx)
	}

	defID, _ := u.Scope.Declare(nameTok.Name, nameTok.Span, symbols.DeclareAttrs{
		Type:      declType,
		IsTypedef: true,
	})

	return u.Stmts.alloc(Stmt{
		Kind: StmtTypeDecl, Span: n.Span(),
		Name: defID, IsForward: isForward, DeclType: declType,
	})
}

func lowerSubprogramDecl(u *Unit, n *cst.Node) ids.StmtIdx {
	isFunc := n.Kind == cst.FuncDecl
	nameTok, _ := firstToken(n, token.Ident)

	var paramList *cst.Node
	var resultNode *cst.Node
	var bodyNodes []*cst.Node
	for _, c := range n.ChildNodes() {
		switch {
		case c.Kind == cst.ParamList && paramList == nil:
			paramList = c
		case isTypeNodeKind(c.Kind) && resultNode == nil && paramList != nil:
			resultNode = c
		case isTypeNodeKind(c.Kind) && resultNode == nil && paramList == nil:
			resultNode = c
		default:
			bodyNodes = append(bodyNodes, c)
		}
	}

	u.Scope.PushScope(symbols.ScopeSubprogram)
	var params []ids.DefID
	if paramList != nil {
		params = lowerParamDecls(u, paramList)
	}
	var result types.TypeRef
	if resultNode != nil {
		result = lowerType(u, resultNode)
	}
	body := lowerStmtSlice(u, bodyNodes)
	u.Scope.PopScope()

	defID, _ := u.Scope.Declare(nameTok.Name, nameTok.Span, symbols.DeclareAttrs{Type: result})

	return u.Stmts.alloc(Stmt{
		Kind: StmtSubprogram, Span: n.Span(),
		Name: defID, IsFunction: isFunc, Params: params, Result: result, Body: body,
	})
}

func lowerBlock(u *Unit, n *cst.Node) ids.StmtIdx {
	u.Scope.PushScope(symbols.ScopeBlock)
	body := lowerStmtSlice(u, n.ChildNodes())
	u.Scope.PopScope()
	return u.Stmts.alloc(Stmt{Kind: StmtBlock, Span: n.Span(), Body: body})
}

// lowerAssign lowers both plain and compound assignment, and the '='
// rewrite-with-warning path, all of which share AssignStmt's CST shape:
// [ref, errorNode-wrapping-operator-tokens, rhs].
func lowerAssign(u *Unit, n *cst.Node) ids.StmtIdx {
	children := n.ChildNodes()
	lhsExpr := lowerExpr(u, children[0])
	opNode := children[1]
	rhsExpr := lowerExpr(u, children[2])

	opToks := opNode.Tokens()
	op := token.Assign
	if len(opToks) == 2 {
		op = opToks[0].Kind
	}
	// A lone Equ token is the '='-for-':=' rewrite; treated as plain
	// assignment (spec section 4.3's Warnings).

	return u.Stmts.alloc(Stmt{Kind: StmtAssign, Span: n.Span(), Expr: lhsExpr, Op: op, RHS: rhsExpr})
}

func lowerIf(u *Unit, n *cst.Node) ids.StmtIdx {
	children := n.ChildNodes()
	cond := lowerExpr(u, children[0])
	var thenBody []ids.StmtIdx
	var elifs []ElsifArm
	var elseBody []ids.StmtIdx

	for _, c := range children[1:] {
		switch c.Kind {
		case cst.ElsifClause:
			cc := c.ChildNodes()
			elifs = append(elifs, ElsifArm{
				Cond: lowerExpr(u, cc[0]),
				Body: lowerStmtSlice(u, cc[1:]),
			})
		case cst.ElseClause:
			elseBody = lowerStmtSlice(u, c.ChildNodes())
		default:
			thenBody = append(thenBody, lowerStmt(u, c))
		}
	}

	return u.Stmts.alloc(Stmt{Kind: StmtIf, Span: n.Span(), Cond: cond, Body: thenBody, Elifs: elifs, Else: elseBody})
}

func lowerFor(u *Unit, n *cst.Node) ids.StmtIdx {
	nameTok, _ := firstToken(n, token.Ident)
	children := n.ChildNodes()

	boundNode := children[0]
	rest := children[1:]
	var stepNode *cst.Node
	var bodyNodes []*cst.Node
	for _, c := range rest {
		if stepNode == nil && !isStmtNodeKind(c.Kind) {
			stepNode = c
			continue
		}
		bodyNodes = append(bodyNodes, c)
	}

	u.Scope.PushScope(symbols.ScopeBlock)
	rangeTy := lowerType(u, boundNode)
	loopVar, _ := u.Scope.Declare(nameTok.Name, nameTok.Span, symbols.DeclareAttrs{Type: rangeTy})
	var step ids.ExprIdx
	if stepNode != nil {
		step = lowerExpr(u, stepNode)
	}
	body := lowerStmtSlice(u, bodyNodes)
	u.Scope.PopScope()

	return u.Stmts.alloc(Stmt{
		Kind: StmtFor, Span: n.Span(),
		LoopVar: loopVar, Decreasing: hasToken(n, token.KwDecreasing),
		Range: rangeTy, Step: step, Body: body,
	})
}

// isStmtNodeKind reports whether k is a statement-grammar production,
// used by lowerFor to tell its optional step expression apart from the
// loop body that immediately follows it.
func isStmtNodeKind(k cst.Kind) bool {
	switch k {
	case cst.ConstDecl, cst.VarDecl, cst.TypeDecl, cst.ProcDecl, cst.FuncDecl,
		cst.BlockStmt, cst.AssignStmt, cst.ProcCallStmt, cst.IfStmt, cst.LoopStmt,
		cst.ExitStmt, cst.ForStmt, cst.CaseStmt, cst.InvariantStmt, cst.AssertStmt,
		cst.SignalStmt, cst.PauseStmt, cst.ResultStmt, cst.ReturnStmt,
		cst.CheckedStmt, cst.UncheckedStmt, cst.PutStmt, cst.GetStmt, cst.ErrorNode:
		return true
	default:
		return false
	}
}

func lowerCase(u *Unit, n *cst.Node) ids.StmtIdx {
	children := n.ChildNodes()
	selector := lowerExpr(u, children[0])
	var arms []CaseArm
	for _, arm := range children[1:] {
		if arm.Kind != cst.CaseArm {
			continue
		}
		ac := arm.ChildNodes()
		labels := lowerExprList(u, ac[0])
		body := lowerStmtSlice(u, ac[1:])
		arms = append(arms, CaseArm{Labels: labels, Body: body})
	}
	return u.Stmts.alloc(Stmt{Kind: StmtCase, Span: n.Span(), Expr: selector, Arms: arms})
}
