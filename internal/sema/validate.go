package sema

import (
	"turingc/internal/diag"
	"turingc/internal/hir"
	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/token"
	"turingc/internal/types"
)

func (v *validator) validateStmts(body []ids.StmtIdx) {
	for _, idx := range body {
		v.validateStmt(idx)
	}
}

func (v *validator) validateStmt(idx ids.StmtIdx) {
	s := v.unit.Stmts.Get(idx)
	if s == nil {
		return
	}
	switch s.Kind {
	case hir.StmtConstVar:
		v.validateConstVar(s)

	case hir.StmtAssign:
		v.validateAssign(s)

	case hir.StmtPut, hir.StmtGet:
		for _, item := range s.Items {
			v.validateExpr(item)
		}

	case hir.StmtBlock:
		v.validateBody(s.Body)

	case hir.StmtIf:
		v.validateExpr(s.Cond)
		v.validateBody(s.Body)
		for _, arm := range s.Elifs {
			v.validateExpr(arm.Cond)
			v.validateBody(arm.Body)
		}
		v.validateBody(s.Else)

	case hir.StmtLoop:
		v.validateBody(s.Body)

	case hir.StmtExit:
		if s.When.IsValid() {
			v.validateExpr(s.When)
		}

	case hir.StmtFor:
		v.validateForStmt(s)

	case hir.StmtCase:
		v.validateExpr(s.Expr) // selector; shares Expr with Assign/ProcCall
		for _, arm := range s.Arms {
			for _, label := range arm.Labels {
				v.validateExpr(label)
			}
			v.validateBody(arm.Body)
		}

	case hir.StmtExprKeyword:
		v.validateExpr(s.Expr)

	case hir.StmtReturn:
		// Bare "return": nothing to check.

	case hir.StmtChecked:
		v.validateBody(s.Body)

	case hir.StmtProcCall:
		v.validateExpr(s.Expr)

	case hir.StmtTypeDecl:
		v.validateTypeDecl(s)

	case hir.StmtSubprogram:
		v.validateSubprogram(s)
	}
}

// validateBody implements spec section 4.7's Block-statement bullet
// uniformly for every block-shaped HIR construct: validate the body's
// statements, then report identifiers introduced directly in it (plus
// any extra DefIds — a For's loop variable, a Subprogram's parameters —
// that lowering scoped to this same body without it appearing as one of
// its statements) that were never used. Lowering already pushed and
// popped the real scope; nothing here needs a live scope stack, since
// "declared here" and "used N times" both live on the flat Identifier
// arena already.
func (v *validator) validateBody(body []ids.StmtIdx, extra ...ids.DefID) {
	v.validateStmts(body)
	locals := v.collectLocalDefs(body)
	locals = append(locals, extra...)
	v.reportUnused(locals)
}

// collectLocalDefs gathers the DefIds a body's own immediate ConstVar
// statements introduce into its enclosing scope. A TypeDecl's or
// Subprogram's own name is deliberately excluded: a dotted call or a
// type reference used only structurally both lower to Missing outside
// HIR's closed Expr set, so a genuinely-called subprogram or a
// genuinely-referenced type can still read back as zero Usages --
// reporting those as unused would be a false positive this front end
// has no way to rule out.
func (v *validator) collectLocalDefs(body []ids.StmtIdx) []ids.DefID {
	var out []ids.DefID
	for _, idx := range body {
		s := v.unit.Stmts.Get(idx)
		if s == nil || s.Kind != hir.StmtConstVar {
			continue
		}
		out = append(out, s.Names...)
	}
	return out
}

func (v *validator) reportUnused(defs []ids.DefID) {
	for _, id := range defs {
		ident := v.unit.Scope.Idents.Get(id)
		if ident == nil || !ident.IsDeclared || ident.Usages > 0 {
			continue
		}
		v.warnAt(ident.Span, diag.SemaUnusedIdentifier, "identifier is declared but never used")
	}
}

// validateConstVar implements spec section 4.7's Variable-declarations
// bullet.
func (v *validator) validateConstVar(s *hir.Stmt) {
	hasType := s.Tail == hir.TailTypeSpec || s.Tail == hir.TailBoth
	hasInit := s.Tail == hir.TailInitExpr || s.Tail == hir.TailBoth

	if hasInit {
		v.validateExpr(s.TailInit)
	}
	if s.IsConst && !hasInit {
		v.reportNames(s.Names, diag.SemaConstWithoutInit, "const declaration has no initializer")
	}

	var declType types.TypeRef
	switch {
	case hasType:
		declType = v.resolveType(s.TailType, typeCtx{allowRuntimeSize: v.isArrayRef(s.TailType) && !s.IsConst, rangeStrict: true})
		if hasInit {
			initTy := v.exprType(s.TailInit)
			if !v.assignable(declType, initTy) {
				v.errorAt(v.spanOf(s.TailInit), diag.SemaAssignTypeMismatch, "initializer is not assignable to the declared type")
			}
		}
	case hasInit:
		declType = v.exprType(s.TailInit)
	default:
		declType = types.TypeError
	}

	for _, id := range s.Names {
		if ident := v.unit.Scope.Idents.Get(id); ident != nil {
			ident.Type = declType
			ident.IsCompileEval = s.IsConst && hasInit
		}
	}
}

func (v *validator) reportNames(names []ids.DefID, code diag.Code, msg string) {
	for _, id := range names {
		if ident := v.unit.Scope.Idents.Get(id); ident != nil {
			v.errorAt(ident.Span, code, msg)
		}
	}
}

func (v *validator) isArrayRef(ref types.TypeRef) bool {
	if ref.Kind != types.RefNamed {
		return false
	}
	ty := v.unit.Types.Get(ref.Named)
	return ty != nil && ty.Kind == types.KindArray
}

// validateAssign implements spec section 4.7's Assignment-statements
// bullet. A dotted field, dereference, or array-element target all
// lower to ExprMissing (outside HIR's closed Expr set), leaving a bare
// Name as the only LHS shape this front end can structurally check
// mutability on.
func (v *validator) validateAssign(s *hir.Stmt) {
	v.validateExpr(s.Expr)
	v.validateExpr(s.RHS)

	lhs := v.unit.Exprs.Get(s.Expr)
	if lhs != nil && lhs.Kind == hir.ExprName {
		if ident := v.unit.Scope.Idents.Get(lhs.Def); ident != nil && ident.IsDeclared {
			if ident.IsConst || ident.IsTypedef {
				v.errorAt(lhs.Span, diag.SemaNotAVariable, "assignment target does not reference a variable")
				return
			}
		}
	}

	lhsTy := v.exprType(s.Expr)
	rhsTy := v.exprType(s.RHS)
	if s.Op == token.Assign {
		if !v.assignable(lhsTy, rhsTy) {
			v.errorAt(v.spanOf(s.RHS), diag.SemaAssignTypeMismatch, "right-hand side is not assignable to the left-hand side's type")
		}
		return
	}
	resultTy := v.binaryResultType(s.Op, lhsTy, rhsTy)
	if !v.assignable(lhsTy, resultTy) {
		v.errorAt(v.spanOf(s.RHS), diag.SemaAssignTypeMismatch, "compound assignment result is not assignable to the left-hand side's type")
	}
}

func (v *validator) validateForStmt(s *hir.Stmt) {
	resolved := v.resolveType(s.Range, typeCtx{rangeStrict: true})
	base := resolved
	if resolved.Kind == types.RefNamed {
		if ty := v.unit.Types.Get(resolved.Named); ty != nil && ty.Kind == types.KindRange {
			base = ty.Base
		}
	}
	if ident := v.unit.Scope.Idents.Get(s.LoopVar); ident != nil {
		ident.Type = base
	}
	if s.Step.IsValid() {
		v.validateExpr(s.Step)
	}
	v.validateBody(s.Body, s.LoopVar)
}

func (v *validator) validateSubprogram(s *hir.Stmt) {
	for _, p := range s.Params {
		if ident := v.unit.Scope.Idents.Get(p); ident != nil {
			ident.Type = v.resolveType(ident.Type, typeCtx{})
		}
	}
	resolvedResult := v.resolveType(s.Result, typeCtx{})
	if ident := v.unit.Scope.Idents.Get(s.Name); ident != nil {
		ident.Type = resolvedResult
		ident.IsTypedef = false
	}
	v.validateBody(s.Body, s.Params...)
}

// validateTypeDecl implements spec section 4.7's Forward-resolution
// bullet. Declare always allocates a fresh DefId (see symbols.Declare),
// so a name's second occurrence never collides with its first at the
// HIR level; forwardSeen is what ties a Forward descriptor to the later
// declaration that closes it, and clearing the entry once consumed is
// exactly what makes a third occurrence of the same name "new and
// unrelated" without any special-case code for it.
func (v *validator) validateTypeDecl(s *hir.Stmt) {
	ident := v.unit.Scope.Idents.Get(s.Name)
	var name source.StringID
	if ident != nil {
		name = ident.Name
	}

	if s.IsForward {
		if v.forwardSeen == nil {
			v.forwardSeen = make(map[source.StringID]ids.TypeIdx)
		}
		v.forwardSeen[name] = s.DeclType.Named
		return
	}

	if prevIdx, pending := v.forwardSeen[name]; pending {
		delete(v.forwardSeen, name)
		resolved := v.resolveType(s.DeclType, typeCtx{inTypeDecl: true})
		if prevTy := v.unit.Types.Get(prevIdx); prevTy != nil {
			prevTy.Resolved = true
			prevTy.AliasTo = resolved
		}
		if ident != nil {
			ident.Type = resolved
		}
		return
	}

	if ident != nil {
		ident.Type = v.resolveType(s.DeclType, typeCtx{inTypeDecl: true})
	}
}
