package sema

import (
	"turingc/internal/consteval"
	"turingc/internal/diag"
	"turingc/internal/hir"
	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/types"
)

// typeCtx threads the handful of positional rules resolveType needs
// (spec section 4.7's per-construct bullets) through its recursive
// descent, rather than branching on call site at every level.
type typeCtx struct {
	// allowRuntimeSize is set for the first range of a var declared
	// directly as an array type. resolveRangeType does not read it: a
	// range bound that is not compile-time evaluable is reported in that
	// position as in any other.
	allowRuntimeSize bool
	// inTypeDecl marks that ref sits directly under a `type` declaration,
	// the only position a Set type is allowed in.
	inTypeDecl bool
	// rangeStrict selects error (true) over warning (false) severity for
	// a zero/negative-sized range: strict for a variable's or set's
	// range, lenient for a bare array-dimension range (spec: "rejected
	// for variable and set types").
	rangeStrict bool
}

// resolveType resolves ref in place, following Name placeholders,
// descending into compound shapes, and leaving primitives and already-
// resolved references untouched. It mutates the underlying arena entry
// so a second resolveType call on the same TypeIdx is free, the same
// get-pointer-then-mutate idiom lowering already uses for EnumType.
func (v *validator) resolveType(ref types.TypeRef, ctx typeCtx) types.TypeRef {
	if !ref.IsValid() || ref.IsPrimitive() {
		return ref
	}
	ty := v.unit.Types.Get(ref.Named)
	if ty == nil {
		return types.TypeError
	}

	switch ty.Kind {
	case types.KindName:
		return v.resolveNamePlaceholder(ref, ty)

	case types.KindForward:
		if ty.Resolved {
			return v.resolveType(ty.AliasTo, ctx)
		}
		return ref // unresolved forward: fine under a Pointer, left as-is elsewhere

	case types.KindAlias:
		return ref

	case types.KindSizedChar, types.KindSizedString:
		return ref

	case types.KindArray:
		return v.resolveArrayType(ref, ty, ctx)

	case types.KindRange:
		return v.resolveRangeType(ref, ty, ctx.rangeStrict)

	case types.KindSet:
		if !ctx.inTypeDecl {
			v.errorAt(ty.Span, diag.SemaBadSetIndexType, "a set type may only appear directly in a type declaration")
		}
		return v.resolveSetType(ref, ty)

	case types.KindPointer:
		ty.To = v.resolveType(ty.To, typeCtx{})
		return ref

	case types.KindFunction:
		resolved := v.resolveFunctionType(ref, ty)
		for _, p := range ty.Params {
			v.rejectUnresolvedForward(p.Type, ty.Span)
		}
		if ty.IsFunction {
			v.rejectUnresolvedForward(ty.Result, ty.Span)
		}
		return resolved

	case types.KindEnum, types.KindEnumField:
		return ref

	default:
		return ref
	}
}

// resolveNamePlaceholder resolves a bare reference-to-type expression
// (spec section 4.7: "Dotted or bare references used in type position
// must ultimately resolve to a typedef identifier"). Once resolved, the
// Name descriptor is rewritten into an Alias pointing at the concrete
// type, so later lookups of the same TypeIdx skip straight past it.
func (v *validator) resolveNamePlaceholder(ref types.TypeRef, ty *types.Type) types.TypeRef {
	if v.resolvingNames == nil {
		v.resolvingNames = make(map[ids.TypeIdx]bool)
	}
	if v.resolvingNames[ref.Named] {
		v.errorAt(ty.Span, diag.SemaUndeclaredIdent, "cyclic type reference")
		ty.Kind, ty.AliasTo = types.KindAlias, types.TypeError
		return types.TypeError
	}
	v.resolvingNames[ref.Named] = true
	defer delete(v.resolvingNames, ref.Named)

	resolved := v.resolveNameExpr(ty.NameRef, ty.Span)
	ty.Kind, ty.AliasTo = types.KindAlias, resolved
	return resolved
}

func (v *validator) resolveNameExpr(exprIdx ids.ExprIdx, fallback source.Span) types.TypeRef {
	e := v.unit.Exprs.Get(exprIdx)
	if e == nil || e.Kind != hir.ExprName {
		// A dotted reference (or any other CST shape outside the closed
		// Expr set) lowers to ExprMissing; this front end has no field
		// resolution to offer it, so it is always an error here.
		v.errorAt(fallback, diag.SemaUndeclaredIdent, "expected a type name")
		return types.TypeError
	}
	ident := v.unit.Scope.Idents.Get(e.Def)
	if ident == nil || !ident.IsDeclared {
		v.errorAt(e.Span, diag.SemaUndeclaredIdent, "undeclared identifier used in type position")
		return types.TypeError
	}
	if !ident.IsTypedef {
		v.errorAt(e.Span, diag.SemaNotATypedef, "identifier does not refer to a type")
		return types.TypeError
	}
	return v.resolveType(ident.Type, typeCtx{})
}

func (v *validator) rejectUnresolvedForward(ref types.TypeRef, span source.Span) {
	if ref.Kind != types.RefNamed {
		return
	}
	if ty := v.unit.Types.Get(ref.Named); ty != nil && ty.Kind == types.KindForward && !ty.Resolved {
		v.errorAt(span, diag.SemaUndeclaredIdent, "forward-declared type cannot be used here before it is resolved")
	}
}

// resolveArrayType implements spec section 4.7's Array-types bullet.
func (v *validator) resolveArrayType(ref types.TypeRef, ty *types.Type, ctx typeCtx) types.TypeRef {
	if ty.IsFlexible && len(ty.Ranges) > 0 && v.isImplicitRange(ty.Ranges[0]) {
		v.errorAt(ty.Span, diag.SemaFlexibleArrayMisuse, "a flexible array cannot use an implicit '*' range")
	}
	for i, r := range ty.Ranges {
		if i > 0 && v.isImplicitRange(r) {
			v.errorAt(ty.Span, diag.SemaImplicitArrayMisuse, "an implicit '*' range is only allowed as an array's first dimension")
		}
	}
	for i := range ty.Ranges {
		ty.Ranges[i] = v.resolveType(ty.Ranges[i], typeCtx{allowRuntimeSize: ctx.allowRuntimeSize && i == 0})
	}

	if v.isNestedFlexibleOrImplicit(ty.Elem) {
		v.errorAt(ty.Span, diag.SemaImplicitArrayMisuse, "a flexible or implicit-sized array cannot be nested as an element type")
	}
	ty.Elem = v.resolveType(ty.Elem, typeCtx{inTypeDecl: true})
	return ref
}

func (v *validator) isImplicitRange(ref types.TypeRef) bool {
	if ref.Kind != types.RefNamed {
		return false
	}
	ty := v.unit.Types.Get(ref.Named)
	return ty != nil && ty.Kind == types.KindRange && !ty.End.IsValid()
}

func (v *validator) isNestedFlexibleOrImplicit(ref types.TypeRef) bool {
	if ref.Kind != types.RefNamed {
		return false
	}
	ty := v.unit.Types.Get(ref.Named)
	if ty == nil || ty.Kind != types.KindArray {
		return false
	}
	if ty.IsFlexible {
		return true
	}
	return len(ty.Ranges) > 0 && v.isImplicitRange(ty.Ranges[0])
}

// resolveSetType implements spec section 4.7's Set-types bullet.
func (v *validator) resolveSetType(ref types.TypeRef, ty *types.Type) types.TypeRef {
	ty.Index = v.resolveType(ty.Index, typeCtx{rangeStrict: true})
	if !v.isIndexType(ty.Index) {
		v.errorAt(ty.Span, diag.SemaBadSetIndexType, "set index must be a range, char, boolean, or enum type")
	}
	return ref
}

func (v *validator) isIndexType(ref types.TypeRef) bool {
	d := v.dealias(ref)
	if d.IsPrimitive() {
		return d.Prim == types.Char || d.Prim == types.Boolean
	}
	if d.Kind != types.RefNamed {
		return false
	}
	ty := v.unit.Types.Get(d.Named)
	return ty != nil && (ty.Kind == types.KindRange || ty.Kind == types.KindEnum)
}

// resolveFunctionType implements spec section 4.7's Function/procedure-
// types bullet.
func (v *validator) resolveFunctionType(ref types.TypeRef, ty *types.Type) types.TypeRef {
	for i := range ty.Params {
		ty.Params[i].Type = v.resolveType(ty.Params[i].Type, typeCtx{})
	}
	if ty.IsFunction {
		ty.Result = v.resolveType(ty.Result, typeCtx{})
	}
	return ref
}

// resolveRangeType implements spec section 4.7's Range-types bullet. An
// implicit '*' upper bound (valid only as an array's first dimension,
// checked by resolveArrayType) has nothing to size and is left alone.
func (v *validator) resolveRangeType(ref types.TypeRef, ty *types.Type, strict bool) types.TypeRef {
	if !ty.End.IsValid() {
		return ref
	}
	startOrd, startTy, ok1 := v.ordOf(ty.Start)
	endOrd, endTy, ok2 := v.ordOf(ty.End)
	if !ok1 || !ok2 {
		ty.Base = types.TypeError
		return ref
	}
	ty.Base = v.widerOrdinalBase(startTy, endTy, startOrd, endOrd)

	size := endOrd - startOrd + 1
	switch {
	case size <= 0:
		if strict {
			v.errorAt(ty.Span, diag.SemaZeroSizedRange, "range has zero or negative size")
		} else {
			v.warnAt(ty.Span, diag.SemaZeroSizedRange, "range has zero or negative size")
		}
	case size > maxRangeSize:
		v.warnAt(ty.Span, diag.SemaRangeTooLarge, "range size exceeds the maximum representable size")
	}
	return ref
}

// ordOf computes the ordinal value of a range bound. An enum field
// reads its Ordinal directly rather than going through the constant
// evaluator, since its value was never registered with a ConstExpr
// handle (its declaration has no initializer expression to defer).
func (v *validator) ordOf(idx ids.ExprIdx) (ord int64, ty types.TypeRef, ok bool) {
	if e := v.unit.Exprs.Get(idx); e != nil && e.Kind == hir.ExprName {
		if ident := v.unit.Scope.Idents.Get(e.Def); ident != nil && ident.Type.Kind == types.RefNamed {
			if fieldTy := v.unit.Types.Get(ident.Type.Named); fieldTy != nil && fieldTy.Kind == types.KindEnumField {
				return int64(fieldTy.Ordinal), ident.Type, true
			}
		}
	}

	val, err := v.evalConst(idx)
	if err != nil {
		v.reportConstErr(err)
		return 0, types.TypeError, false
	}
	switch val.Kind {
	case consteval.ValInteger:
		return val.Int.AsInt64(), v.exprType(idx), true
	case consteval.ValBool:
		n := int64(0)
		if val.Bool {
			n = 1
		}
		return n, types.PrimRef(types.Boolean), true
	default:
		v.errorAt(v.spanOf(idx), diag.ConstWrongType, "range bound is not an ordinal value")
		return 0, types.TypeError, false
	}
}

// widerOrdinalBase implements spec section 4.7's "base type is taken
// from end (wider of the two) and, if an enum-field, is promoted to its
// parent enum type" rule. Signedness is read off the already-evaluated
// bounds rather than the bounds' static shape, so `-5 .. 10` promotes to
// int even though its literals are untyped nat tokens (spec's recurring
// "intnat is promoted to int").
func (v *validator) widerOrdinalBase(startTy, endTy types.TypeRef, startOrd, endOrd int64) types.TypeRef {
	if p := v.enumFieldParent(startTy); p.IsValid() {
		return p
	}
	if p := v.enumFieldParent(endTy); p.IsValid() {
		return p
	}
	if isBooleanPrim(startTy) || isBooleanPrim(endTy) {
		return types.PrimRef(types.Boolean)
	}
	if isCharPrim(startTy) || isCharPrim(endTy) {
		return types.PrimRef(types.Char)
	}
	if startOrd < 0 || endOrd < 0 {
		return types.PrimRef(types.Int)
	}
	return types.PrimRef(types.Nat)
}

func (v *validator) enumFieldParent(ref types.TypeRef) types.TypeRef {
	if ref.Kind != types.RefNamed {
		return types.TypeRef{}
	}
	ty := v.unit.Types.Get(ref.Named)
	if ty == nil || ty.Kind != types.KindEnumField {
		return types.TypeRef{}
	}
	return types.NamedRef(ty.Parent)
}
