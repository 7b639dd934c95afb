package consteval

import (
	"turingc/internal/diag"
	"turingc/internal/source"
)

// ConstError enumerates the ways a constant expression fails to
// evaluate (spec section 4.9's ConstError list).
type ConstError uint8

const (
	NoError ConstError = iota
	EvalCycle
	MissingExpr
	NotConstOp
	NoConstExpr
	WrongType
	WrongResultType
	IntOverflow
	RealOverflow
	DivByZero
	NegativeIntExp
	NegativeIntShift
	UnsupportedValue
	UnsupportedOp
	Reported
)

// Code maps a ConstError to its diagnostic code for reporting.
func (e ConstError) Code() diag.Code {
	switch e {
	case EvalCycle:
		return diag.ConstEvalCycle
	case MissingExpr:
		return diag.ConstMissingExpr
	case NotConstOp:
		return diag.ConstNotConstOp
	case NoConstExpr:
		return diag.ConstNoConstExpr
	case WrongType:
		return diag.ConstWrongType
	case WrongResultType:
		return diag.ConstWrongResultType
	case IntOverflow:
		return diag.ConstIntOverflow
	case RealOverflow:
		return diag.ConstRealOverflow
	case DivByZero:
		return diag.ConstDivByZero
	case NegativeIntExp:
		return diag.ConstNegativeIntExp
	case NegativeIntShift:
		return diag.ConstNegativeIntShift
	case UnsupportedValue:
		return diag.ConstUnsupportedValue
	case UnsupportedOp:
		return diag.ConstUnsupportedOp
	default:
		return diag.UnknownCode
	}
}

func (e ConstError) String() string {
	switch e {
	case EvalCycle:
		return "cyclic constant evaluation"
	case MissingExpr:
		return "constant expression contains an unresolved subtree"
	case NotConstOp:
		return "operator is not valid in a constant expression"
	case NoConstExpr:
		return "identifier does not refer to a compile-time constant"
	case WrongType:
		return "operand has the wrong type for this operator"
	case WrongResultType:
		return "constant expression did not evaluate to the expected type"
	case IntOverflow:
		return "integer constant overflow"
	case RealOverflow:
		return "real constant overflow"
	case DivByZero:
		return "division by zero in constant expression"
	case NegativeIntExp:
		return "negative exponent in integer constant expression"
	case NegativeIntShift:
		return "negative shift amount in constant expression"
	case UnsupportedValue:
		return "value is not supported in a constant expression"
	case UnsupportedOp:
		return "operator is not supported in a constant expression"
	case Reported:
		return "already reported"
	default:
		return "unknown constant evaluation error"
	}
}

// Spanned pairs a ConstError with the primary span it should be reported
// against (spec section 4.9: "Each is surfaced with a primary span").
type Spanned struct {
	Err  ConstError
	Span source.Span
}
