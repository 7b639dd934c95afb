package sema

import (
	"unicode/utf8"

	"turingc/internal/diag"
	"turingc/internal/hir"
	"turingc/internal/ids"
	"turingc/internal/token"
	"turingc/internal/types"
)

// validateExpr walks idx checking the one rule that survives HIR's
// closed Expr set: every Name must resolve to something actually
// declared. Dotted references, calls, and pointer follows never reach
// here as ExprName — they lowered to ExprMissing already, so there is
// nothing further for the validator to check on them.
func (v *validator) validateExpr(idx ids.ExprIdx) {
	e := v.unit.Exprs.Get(idx)
	if e == nil {
		return
	}
	switch e.Kind {
	case hir.ExprName:
		if ident := v.unit.Scope.Idents.Get(e.Def); ident == nil || !ident.IsDeclared {
			v.errorAt(e.Span, diag.SemaUndeclaredIdent, "undeclared identifier")
		}
	case hir.ExprParen:
		v.validateExpr(e.Inner)
	case hir.ExprUnary:
		v.validateExpr(e.RHS)
	case hir.ExprBinary:
		v.validateExpr(e.LHS)
		v.validateExpr(e.RHS)
	}
}

// exprType infers idx's static type well enough to drive assignability
// checks. It is deliberately not an exhaustive type checker: since
// DotExpr/CallExpr/DerefExpr all lower to ExprMissing, there is no
// field-access or call-result type this front end ever needs to resolve,
// so the inference only needs to cover literals, names, parens, and the
// closed unary/binary operator set.
func (v *validator) exprType(idx ids.ExprIdx) types.TypeRef {
	e := v.unit.Exprs.Get(idx)
	if e == nil {
		return types.TypeError
	}
	switch e.Kind {
	case hir.ExprLiteral:
		switch e.LitKind {
		case hir.LitInt:
			return types.PrimRef(types.Int) // spec: "an intnat is promoted to int"
		case hir.LitReal:
			return types.PrimRef(types.Real)
		case hir.LitBool:
			return types.PrimRef(types.Boolean)
		case hir.LitChar:
			return types.PrimRef(types.Char)
		case hir.LitString:
			if v.opts.In != nil {
				if s, ok := v.opts.In.Lookup(e.StrVal); ok {
					return types.LitStringRef(uint64(utf8.RuneCountInString(s)))
				}
			}
			return types.PrimRef(types.Str)
		default:
			return types.TypeError
		}

	case hir.ExprName:
		ident := v.unit.Scope.Idents.Get(e.Def)
		if ident == nil || !ident.IsDeclared {
			return types.TypeError
		}
		return v.resolveType(ident.Type, typeCtx{})

	case hir.ExprParen:
		return v.exprType(e.Inner)

	case hir.ExprUnary:
		operand := v.exprType(e.RHS)
		switch e.Op {
		case token.KwNot, token.Tilde:
			if isBooleanPrim(operand) {
				return types.PrimRef(types.Boolean)
			}
			return operand
		default: // Plus, Minus
			return operand
		}

	case hir.ExprBinary:
		return v.binaryResultType(e.Op, v.exprType(e.LHS), v.exprType(e.RHS))

	default:
		return types.TypeError
	}
}

// binaryResultType mirrors spec section 4.9's ConstOp semantics at the
// type level instead of the value level.
func (v *validator) binaryResultType(op token.Kind, l, r types.TypeRef) types.TypeRef {
	switch op {
	case token.Plus, token.Minus, token.Star, token.KwDiv, token.KwMod, token.KwRem, token.Exp:
		if isRealPrim(l) || isRealPrim(r) {
			return types.PrimRef(types.Real)
		}
		return widerNumeric(l, r)

	case token.Slash:
		return types.PrimRef(types.Real)

	case token.KwShl, token.KwShr:
		return widerNumeric(l, r)

	case token.KwAnd, token.KwOr, token.KwXor:
		if isBooleanPrim(l) && isBooleanPrim(r) {
			return types.PrimRef(types.Boolean)
		}
		return widerNumeric(l, r)

	case token.Imply:
		return types.PrimRef(types.Boolean)

	case token.Equ, token.NotEqu, token.Less, token.LessEqu, token.Greater, token.GreaterEqu, token.KwIn, token.NotIn:
		return types.PrimRef(types.Boolean)

	default:
		return types.TypeError
	}
}

// widerNumeric picks a result type for mixed-width integer arithmetic: a
// shared primitive kind is kept as-is, any mismatch promotes to plain
// int (spec's recurring "intnat is promoted to int", generalized to
// "any numeric mismatch promotes to int" for the handful of bullets that
// don't spell out a full integer-promotion lattice).
func widerNumeric(l, r types.TypeRef) types.TypeRef {
	if !isIntFamily(l) || !isIntFamily(r) {
		return types.TypeError
	}
	if l.Prim == r.Prim {
		return l
	}
	return types.PrimRef(types.Int)
}
