package consteval

import (
	"math"
	"math/bits"

	"fortio.org/safecast"
	"turingc/internal/source"
	"turingc/internal/token"
)

// applyOp pops op's operands off operandStack, applies it, and returns
// the result (spec section 4.9 step 4: "when an Op is popped, it
// consumes operands from operand_stack and pushes the result").
func (c *Ctx) applyOp(op opWork, operandStack *[]ConstValue) (ConstValue, *Spanned) {
	if op.arity == 1 {
		if len(*operandStack) < 1 {
			return ConstValue{}, &Spanned{Err: WrongType, Span: op.span}
		}
		v := pop(operandStack)
		return applyUnary(op.op, v, op.span)
	}
	if len(*operandStack) < 2 {
		return ConstValue{}, &Spanned{Err: WrongType, Span: op.span}
	}
	rhs := pop(operandStack)
	lhs := pop(operandStack)
	return applyBinary(op.op, lhs, rhs, op.span)
}

func pop(stack *[]ConstValue) ConstValue {
	s := *stack
	v := s[len(s)-1]
	*stack = s[:len(s)-1]
	return v
}

func applyUnary(op token.Kind, v ConstValue, span source.Span) (ConstValue, *Spanned) {
	switch op {
	case token.Plus:
		if v.Kind != ValInteger && v.Kind != ValReal {
			return ConstValue{}, &Spanned{Err: WrongType, Span: span}
		}
		return v, nil

	case token.Minus:
		switch v.Kind {
		case ValInteger:
			neg := -v.Int.AsInt64()
			if !fitsWidth(neg, v.Int.Width, true) {
				return ConstValue{}, &Spanned{Err: IntOverflow, Span: span}
			}
			return ConstValue{Kind: ValInteger, Int: ConstInt{Bits: uint64(neg), Signed: true, Width: v.Int.Width}}, nil
		case ValReal:
			return ConstValue{Kind: ValReal, Real: -v.Real}, nil
		default:
			return ConstValue{}, &Spanned{Err: WrongType, Span: span}
		}

	case token.KwNot, token.Tilde:
		switch v.Kind {
		case ValBool:
			return ConstValue{Kind: ValBool, Bool: !v.Bool}, nil
		case ValInteger:
			comp := ^v.Int.AsInt64()
			return ConstValue{Kind: ValInteger, Int: ConstInt{Bits: uint64(comp), Signed: v.Int.Signed || comp < 0, Width: v.Int.Width}}, nil
		default:
			return ConstValue{}, &Spanned{Err: WrongType, Span: span}
		}

	default:
		return ConstValue{}, &Spanned{Err: NotConstOp, Span: span}
	}
}

func applyBinary(op token.Kind, lhs, rhs ConstValue, span source.Span) (ConstValue, *Spanned) {
	switch op {
	case token.Plus:
		return arith(opAdd, lhs, rhs, span)
	case token.Minus:
		return arith(opSub, lhs, rhs, span)
	case token.Star:
		return arith(opMul, lhs, rhs, span)
	case token.Slash:
		return realDivide(lhs, rhs, span)
	case token.KwDiv:
		return arith(opDiv, lhs, rhs, span)
	case token.KwMod:
		return arith(opMod, lhs, rhs, span)
	case token.KwRem:
		return arith(opRem, lhs, rhs, span)
	case token.Exp:
		return power(lhs, rhs, span)
	case token.KwShl:
		return shift(lhs, rhs, span, true)
	case token.KwShr:
		return shift(lhs, rhs, span, false)
	case token.KwAnd:
		return boolOrBitwise(lhs, rhs, span, func(a, b bool) bool { return a && b }, func(a, b int64) int64 { return a & b })
	case token.KwOr:
		return boolOrBitwise(lhs, rhs, span, func(a, b bool) bool { return a || b }, func(a, b int64) int64 { return a | b })
	case token.KwXor:
		return boolOrBitwise(lhs, rhs, span, func(a, b bool) bool { return a != b }, func(a, b int64) int64 { return a ^ b })
	case token.Imply:
		return imply(lhs, rhs, span)
	case token.Equ, token.NotEqu, token.Less, token.LessEqu, token.Greater, token.GreaterEqu:
		return compare(op, lhs, rhs, span)
	case token.KwIn, token.NotIn:
		// Set membership has no ConstValue representation.
		return ConstValue{}, &Spanned{Err: UnsupportedOp, Span: span}
	default:
		return ConstValue{}, &Spanned{Err: NotConstOp, Span: span}
	}
}

type arithKind int

const (
	opAdd arithKind = iota
	opSub
	opMul
	opDiv
	opMod
	opRem
)

// arith implements the "+ - * div mod rem" family: real if either
// operand is real, integer otherwise (spec section 4.9's ConstOp
// semantics).
func arith(kind arithKind, lhs, rhs ConstValue, span source.Span) (ConstValue, *Spanned) {
	if lhs.Kind == ValReal || rhs.Kind == ValReal {
		l, lok := toReal(lhs)
		r, rok := toReal(rhs)
		if !lok || !rok {
			return ConstValue{}, &Spanned{Err: WrongType, Span: span}
		}
		var res float64
		switch kind {
		case opAdd:
			res = l + r
		case opSub:
			res = l - r
		case opMul:
			res = l * r
		case opDiv:
			if r == 0 {
				return ConstValue{}, &Spanned{Err: DivByZero, Span: span}
			}
			res = math.Trunc(l / r)
		case opMod, opRem:
			if r == 0 {
				return ConstValue{}, &Spanned{Err: DivByZero, Span: span}
			}
			res = math.Mod(l, r)
		}
		if math.IsInf(res, 0) {
			return ConstValue{}, &Spanned{Err: RealOverflow, Span: span}
		}
		return ConstValue{Kind: ValReal, Real: res}, nil
	}

	if lhs.Kind != ValInteger || rhs.Kind != ValInteger {
		return ConstValue{}, &Spanned{Err: WrongType, Span: span}
	}
	width := lhs.Int.Width
	if rhs.Int.Width > width {
		width = rhs.Int.Width
	}
	l, r := lhs.Int.AsInt64(), rhs.Int.AsInt64()

	var res int64
	var overflow bool
	switch kind {
	case opAdd:
		res, overflow = addOverflow(l, r)
	case opSub:
		res, overflow = subOverflow(l, r)
	case opMul:
		res, overflow = mulOverflow(l, r)
	case opDiv:
		if r == 0 {
			return ConstValue{}, &Spanned{Err: DivByZero, Span: span}
		}
		if l == math.MinInt64 && r == -1 {
			return ConstValue{}, &Spanned{Err: IntOverflow, Span: span}
		}
		res = l / r
	case opMod:
		if r == 0 {
			return ConstValue{}, &Spanned{Err: DivByZero, Span: span}
		}
		res = ((l % r) + r) % r
	case opRem:
		if r == 0 {
			return ConstValue{}, &Spanned{Err: DivByZero, Span: span}
		}
		res = l % r
	}
	if overflow {
		return ConstValue{}, &Spanned{Err: IntOverflow, Span: span}
	}
	signed := lhs.Int.Signed || rhs.Int.Signed || res < 0
	if !fitsWidth(res, width, signed) {
		return ConstValue{}, &Spanned{Err: IntOverflow, Span: span}
	}
	return ConstValue{Kind: ValInteger, Int: ConstInt{Bits: uint64(res), Signed: signed, Width: width}}, nil
}

// realDivide implements "/": always real (spec section 4.9).
func realDivide(lhs, rhs ConstValue, span source.Span) (ConstValue, *Spanned) {
	l, lok := toReal(lhs)
	r, rok := toReal(rhs)
	if !lok || !rok {
		return ConstValue{}, &Spanned{Err: WrongType, Span: span}
	}
	if r == 0 {
		return ConstValue{}, &Spanned{Err: DivByZero, Span: span}
	}
	res := l / r
	if math.IsInf(res, 0) {
		return ConstValue{}, &Spanned{Err: RealOverflow, Span: span}
	}
	return ConstValue{Kind: ValReal, Real: res}, nil
}

// power implements "**"; a negative integer exponent is rejected (spec
// section 4.9).
func power(lhs, rhs ConstValue, span source.Span) (ConstValue, *Spanned) {
	if lhs.Kind == ValReal || rhs.Kind == ValReal {
		l, lok := toReal(lhs)
		r, rok := toReal(rhs)
		if !lok || !rok {
			return ConstValue{}, &Spanned{Err: WrongType, Span: span}
		}
		res := math.Pow(l, r)
		if math.IsInf(res, 0) {
			return ConstValue{}, &Spanned{Err: RealOverflow, Span: span}
		}
		return ConstValue{Kind: ValReal, Real: res}, nil
	}
	if lhs.Kind != ValInteger || rhs.Kind != ValInteger {
		return ConstValue{}, &Spanned{Err: WrongType, Span: span}
	}
	exp := rhs.Int.AsInt64()
	if exp < 0 {
		return ConstValue{}, &Spanned{Err: NegativeIntExp, Span: span}
	}
	base := lhs.Int.AsInt64()
	res := int64(1)
	for i := int64(0); i < exp; i++ {
		next, overflow := mulOverflow(res, base)
		if overflow {
			return ConstValue{}, &Spanned{Err: IntOverflow, Span: span}
		}
		res = next
	}
	signed := lhs.Int.Signed || res < 0
	if !fitsWidth(res, lhs.Int.Width, signed) {
		return ConstValue{}, &Spanned{Err: IntOverflow, Span: span}
	}
	return ConstValue{Kind: ValInteger, Int: ConstInt{Bits: uint64(res), Signed: signed, Width: lhs.Int.Width}}, nil
}

// shift implements "shl"/"shr": integer-only, negative amount rejected,
// an amount at or beyond the operand's width yields zero (spec section
// 4.9: "spec as zero for determinism").
func shift(lhs, rhs ConstValue, span source.Span, left bool) (ConstValue, *Spanned) {
	if lhs.Kind != ValInteger || rhs.Kind != ValInteger {
		return ConstValue{}, &Spanned{Err: WrongType, Span: span}
	}
	amount := rhs.Int.AsInt64()
	if amount < 0 {
		return ConstValue{}, &Spanned{Err: NegativeIntShift, Span: span}
	}
	if amount >= int64(lhs.Int.Width) {
		return ConstValue{Kind: ValInteger, Int: ConstInt{Width: lhs.Int.Width, Signed: lhs.Int.Signed}}, nil
	}
	v := lhs.Int.AsInt64()
	var res int64
	if left {
		res = v << uint(amount)
	} else {
		res = v >> uint(amount)
	}
	if !fitsWidth(res, lhs.Int.Width, lhs.Int.Signed) {
		return ConstValue{}, &Spanned{Err: IntOverflow, Span: span}
	}
	return ConstValue{Kind: ValInteger, Int: ConstInt{Bits: uint64(res), Signed: lhs.Int.Signed, Width: lhs.Int.Width}}, nil
}

// boolOrBitwise implements "and"/"or"/"xor", which are logical over
// booleans and bitwise over integers (spec section 4.9).
func boolOrBitwise(lhs, rhs ConstValue, span source.Span, onBool func(a, b bool) bool, onInt func(a, b int64) int64) (ConstValue, *Spanned) {
	if lhs.Kind == ValBool && rhs.Kind == ValBool {
		return ConstValue{Kind: ValBool, Bool: onBool(lhs.Bool, rhs.Bool)}, nil
	}
	if lhs.Kind == ValInteger && rhs.Kind == ValInteger {
		width := lhs.Int.Width
		if rhs.Int.Width > width {
			width = rhs.Int.Width
		}
		res := onInt(lhs.Int.AsInt64(), rhs.Int.AsInt64())
		return ConstValue{Kind: ValInteger, Int: ConstInt{Bits: uint64(res), Signed: lhs.Int.Signed || rhs.Int.Signed || res < 0, Width: width}}, nil
	}
	return ConstValue{}, &Spanned{Err: WrongType, Span: span}
}

// imply implements "=>", defined only over booleans (spec section 4.9).
func imply(lhs, rhs ConstValue, span source.Span) (ConstValue, *Spanned) {
	if lhs.Kind != ValBool || rhs.Kind != ValBool {
		return ConstValue{}, &Spanned{Err: WrongType, Span: span}
	}
	return ConstValue{Kind: ValBool, Bool: !lhs.Bool || rhs.Bool}, nil
}

// compare implements the relational operators over numeric or boolean
// operands, returning Bool (spec section 4.9).
func compare(op token.Kind, lhs, rhs ConstValue, span source.Span) (ConstValue, *Spanned) {
	if lhs.Kind == ValBool && rhs.Kind == ValBool {
		switch op {
		case token.Equ:
			return ConstValue{Kind: ValBool, Bool: lhs.Bool == rhs.Bool}, nil
		case token.NotEqu:
			return ConstValue{Kind: ValBool, Bool: lhs.Bool != rhs.Bool}, nil
		default:
			return ConstValue{}, &Spanned{Err: NotConstOp, Span: span}
		}
	}
	l, lok := toReal(lhs)
	r, rok := toReal(rhs)
	if !lok || !rok {
		return ConstValue{}, &Spanned{Err: WrongType, Span: span}
	}
	var res bool
	switch op {
	case token.Equ:
		res = l == r
	case token.NotEqu:
		res = l != r
	case token.Less:
		res = l < r
	case token.LessEqu:
		res = l <= r
	case token.Greater:
		res = l > r
	case token.GreaterEqu:
		res = l >= r
	default:
		return ConstValue{}, &Spanned{Err: NotConstOp, Span: span}
	}
	return ConstValue{Kind: ValBool, Bool: res}, nil
}

func addOverflow(l, r int64) (int64, bool) {
	sumBits, _ := bits.Add64(uint64(l), uint64(r), 0)
	sum := int64(sumBits)
	overflow := (l >= 0) == (r >= 0) && (sum >= 0) != (l >= 0)
	return sum, overflow
}

func subOverflow(l, r int64) (int64, bool) {
	diffBits, _ := bits.Sub64(uint64(l), uint64(r), 0)
	diff := int64(diffBits)
	overflow := (l >= 0) != (r >= 0) && (diff >= 0) != (l >= 0)
	return diff, overflow
}

func mulOverflow(l, r int64) (int64, bool) {
	if l == 0 || r == 0 {
		return 0, false
	}
	neg := (l < 0) != (r < 0)
	hi, lo := bits.Mul64(absU64(l), absU64(r))
	if hi != 0 {
		return 0, true
	}
	if neg {
		if lo > uint64(math.MaxInt64)+1 {
			return 0, true
		}
		return -int64(lo), false
	}
	if lo > uint64(math.MaxInt64) {
		return 0, true
	}
	return int64(lo), false
}

func absU64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// fitsWidth reports whether v fits in an integer of width bits (signed
// or unsigned), using safecast's boundary conversions rather than
// hand-rolled range checks (Open Question: 32/64-bit constant width).
func fitsWidth(v int64, width int, signed bool) bool {
	switch {
	case width <= 0 || width >= 64:
		if signed {
			return true
		}
		_, err := safecast.Conv[uint64](v)
		return err == nil
	case signed:
		switch {
		case width <= 8:
			_, err := safecast.Conv[int8](v)
			return err == nil
		case width <= 16:
			_, err := safecast.Conv[int16](v)
			return err == nil
		default:
			_, err := safecast.Conv[int32](v)
			return err == nil
		}
	default:
		switch {
		case width <= 8:
			_, err := safecast.Conv[uint8](v)
			return err == nil
		case width <= 16:
			_, err := safecast.Conv[uint16](v)
			return err == nil
		default:
			_, err := safecast.Conv[uint32](v)
			return err == nil
		}
	}
}
