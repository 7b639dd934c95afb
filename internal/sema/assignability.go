package sema

import (
	"turingc/internal/consteval"
	"turingc/internal/ids"
	"turingc/internal/types"
)

// equivKey guards equivalent's structural recursion against mutually
// recursive named types, the same assignabilityInProgress-map idiom the
// teacher's type checker uses for its own cyclic union check.
type equivKey struct {
	L, R ids.TypeIdx
}

func (v *validator) dealias(ref types.TypeRef) types.TypeRef {
	return v.unit.Types.Dealias(ref)
}

// assignable implements spec section 4.8's nine assignability rules, in
// order.
func (v *validator) assignable(l, r types.TypeRef) bool {
	if l.IsError() || r.IsError() {
		return true // TypeError already reported; suppress cascades
	}
	dl, dr := v.dealias(l), v.dealias(r)

	if v.typesEqual(dl, dr) { // 1
		return true
	}
	if isIntFamily(dl) && isIntFamily(dr) { // 2
		return true
	}
	if isRealPrim(dl) && isNumberPrim(dr) { // 3
		return true
	}
	if isStringPrim(dl) && v.isCharSeq(dr) { // 4
		return true
	}
	if lw, lok := v.charSeqLen(dl); lok { // 5
		if rw, rok := v.charSeqLen(dr); rok && (lw == 0 || lw >= rw) {
			return true
		}
	}
	// 6: R is string, checked at runtime, but only when R's length isn't
	// already known (a literal with HasLitStrLen set is resolved by rule 5
	// instead, so a literal longer than L's declared width is rejected here
	// rather than deferred to a runtime check that can never happen).
	if v.isCharSeq(dl) && isStringPrim(dr) && !dr.HasLitStrLen {
		return true
	}
	if isCharPrim(dl) && v.isCharSeq(dr) { // 7
		if w, ok := v.charSeqLen(dr); ok && w == 1 {
			return true
		}
	}
	if isCharPrim(dr) && v.isCharSeq(dl) {
		if w, ok := v.charSeqLen(dl); ok && w == 1 {
			return true
		}
	}
	if dl.Kind == types.RefNamed { // 8
		if ty := v.unit.Types.Get(dl.Named); ty != nil && ty.Kind == types.KindRange {
			if v.equivalent(ty.Base, dr) {
				return true
			}
		}
	}
	return v.equivalent(dl, dr) // 9
}

// equivalent implements spec section 4.8's Equivalence rule.
func (v *validator) equivalent(l, r types.TypeRef) bool {
	dl, dr := v.dealias(l), v.dealias(r)
	if v.typesEqual(dl, dr) {
		return true
	}
	if isIntFamily(dl) && isIntFamily(dr) {
		return true
	}
	if isRealPrim(dl) && isRealPrim(dr) {
		return true
	}
	if v.isCharLen1(dl) && v.isCharLen1(dr) {
		return true
	}
	if dl.Kind != types.RefNamed || dr.Kind != types.RefNamed {
		return false
	}

	key := equivKey{L: dl.Named, R: dr.Named}
	if v.equivGuard == nil {
		v.equivGuard = make(map[equivKey]bool)
	}
	if v.equivGuard[key] {
		return true // cycle: already assumed equivalent higher up the recursion
	}
	v.equivGuard[key] = true
	defer delete(v.equivGuard, key)

	tl, tr := v.unit.Types.Get(dl.Named), v.unit.Types.Get(dr.Named)
	if tl == nil || tr == nil || tl.Kind != tr.Kind {
		return false
	}
	switch tl.Kind {
	case types.KindFunction:
		return v.functionEquivalent(tl, tr)
	case types.KindSet:
		return v.equivalent(tl.Index, tr.Index)
	default:
		// Range, Enum, and every other named variant are equivalent only
		// by sharing a TypeIdx (spec: "Named record/union/enum types are
		// equivalent only if they share a TypeIdx"; a declared Range
		// carries no cheaper structural identity than its own arena slot
		// either, since comparing compile-time bounds across two
		// distinct declarations would need re-evaluating both through
		// the constant evaluator from inside a pure type-relation
		// helper).
		return dl.Named == dr.Named
	}
}

func (v *validator) functionEquivalent(a, b *types.Type) bool {
	if a.IsFunction != b.IsFunction || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !v.equivalent(a.Params[i].Type, b.Params[i].Type) {
			return false
		}
	}
	if a.IsFunction {
		return v.equivalent(a.Result, b.Result)
	}
	return true
}

func (v *validator) typesEqual(l, r types.TypeRef) bool {
	if l.Kind != r.Kind {
		return false
	}
	if l.Kind == types.RefPrimitive {
		return l.Prim == r.Prim
	}
	return l.Named == r.Named
}

// charSeqLen reports a sized char/string type's declared length and
// whether ref denotes a char-sequence at all; a bare char counts as
// length 1. The '*' spelling reports length 0, matching rule 5's "len(L)
// == 0 (a * width)".
func (v *validator) charSeqLen(ref types.TypeRef) (uint64, bool) {
	if ref.IsPrimitive() {
		if ref.Prim == types.Char {
			return 1, true
		}
		if ref.Prim == types.Str && ref.HasLitStrLen {
			return ref.LitStrLen, true
		}
		return 0, false
	}
	if ref.Kind != types.RefNamed {
		return 0, false
	}
	ty := v.unit.Types.Get(ref.Named)
	if ty == nil {
		return 0, false
	}
	switch ty.Kind {
	case types.KindSizedChar, types.KindSizedString:
		if ty.IsStar {
			return 0, true
		}
		return v.constLen(ty.Size)
	default:
		return 0, false
	}
}

func (v *validator) isCharSeq(ref types.TypeRef) bool {
	_, ok := v.charSeqLen(ref)
	return ok
}

// isCharLen1 reports whether ref is char or a sized char/string whose
// evaluated length is exactly 1 (spec section 4.8: "char is equivalent
// to char(1)").
func (v *validator) isCharLen1(ref types.TypeRef) bool {
	if isCharPrim(ref) {
		return true
	}
	n, ok := v.charSeqLen(ref)
	return ok && n == 1
}

func (v *validator) constLen(idx ids.ExprIdx) (uint64, bool) {
	val, err := v.evalConst(idx)
	if err != nil {
		v.reportConstErr(err)
		return 0, false
	}
	if val.Kind != consteval.ValInteger {
		return 0, false
	}
	return val.Int.AsUint64(), true
}

func isIntFamily(ref types.TypeRef) bool  { return ref.IsPrimitive() && ref.Prim.IsInteger() }
func isRealPrim(ref types.TypeRef) bool   { return ref.IsPrimitive() && ref.Prim.IsReal() }
func isNumberPrim(ref types.TypeRef) bool { return ref.IsPrimitive() && ref.Prim.IsNumber() }
func isCharPrim(ref types.TypeRef) bool   { return ref.IsPrimitive() && ref.Prim == types.Char }
func isStringPrim(ref types.TypeRef) bool { return ref.IsPrimitive() && ref.Prim == types.Str }
func isBooleanPrim(ref types.TypeRef) bool {
	return ref.IsPrimitive() && ref.Prim == types.Boolean
}
