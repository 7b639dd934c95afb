// Package consteval computes compile-time expression values on demand,
// with cycle detection, for a single compilation unit (spec section
// 4.9's ConstEvalCtx).
package consteval

// ConstValueKind discriminates ConstValue's three payload shapes.
type ConstValueKind uint8

const (
	ValInvalid ConstValueKind = iota
	ValInteger
	ValReal
	ValBool
)

// ConstInt is the seat of overflow detection: it carries the bit pattern
// of a signed or unsigned integer constant together with its width, so
// the same value can be range-checked against int1/int2/int4/int or
// nat1/nat2/nat4/nat before it is bound to a declaration.
type ConstInt struct {
	Bits   uint64
	Signed bool
	Width  int // 8, 16, 32, or 64
}

func (ci ConstInt) AsInt64() int64   { return int64(ci.Bits) }
func (ci ConstInt) AsUint64() uint64 { return ci.Bits }

// ConstValue is the result of evaluating a constant expression (spec
// section 4.9: "Variant: Integer(ConstInt), Real(f64), Bool(bool)").
// String constants have no ConstValue representation; a string literal
// used where a constant value is required surfaces UnsupportedValue.
type ConstValue struct {
	Kind ConstValueKind
	Int  ConstInt
	Real float64
	Bool bool
}

func toReal(v ConstValue) (float64, bool) {
	switch v.Kind {
	case ValReal:
		return v.Real, true
	case ValInteger:
		return float64(v.Int.AsInt64()), true
	default:
		return 0, false
	}
}
