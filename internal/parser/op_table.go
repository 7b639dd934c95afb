package parser

import "turingc/internal/token"

// Binary operator precedence, low to high (spec section 4.3). Grounded on
// original_source's Precedence enum and get_rule table, with Exponent and
// the pointer-follow operator made right-associative per the spec's
// explicit deviation from the older table.
const (
	precImply      = 1 // =>
	precBitOr      = 2 // or
	precBitAnd     = 3 // and
	precBitNot     = 4 // not / ~        (prefix only)
	precComparison = 5 // = not= < <= > >= in not in
	precSum        = 6 // + - xor
	precProduct    = 7 // * / div mod rem shl shr
	precUnary      = 8 // unary + -      (prefix only)
	precExponent   = 9 // **
	precConversion = 10 // #            (prefix only)
)

// binaryPrec reports the precedence of k as a left/right binary operator
// and whether it is right-associative. ok is false for anything that is
// not a binary operator (including the Call/Dot/Follow/Deref family, which
// the Pratt loop never reaches because parsePostfix already consumed them
// immediately after the operand).
func binaryPrec(k token.Kind) (prec int, rightAssoc bool, ok bool) {
	switch k {
	case token.Imply:
		return precImply, false, true
	case token.KwOr:
		return precBitOr, false, true
	case token.KwAnd:
		return precBitAnd, false, true
	case token.Equ, token.NotEqu, token.Less, token.LessEqu, token.Greater, token.GreaterEqu,
		token.KwIn, token.NotIn:
		return precComparison, false, true
	case token.Plus, token.Minus, token.KwXor:
		return precSum, false, true
	case token.Star, token.Slash, token.KwDiv, token.KwMod, token.KwRem, token.KwShl, token.KwShr:
		return precProduct, false, true
	case token.Exp:
		return precExponent, true, true
	default:
		return 0, false, false
	}
}

// isPrefixUnary reports whether k begins a prefix-unary expression, and at
// what precedence its operand should be parsed.
func isPrefixUnary(k token.Kind) (operandPrec int, ok bool) {
	switch k {
	case token.KwNot, token.Tilde:
		return precBitNot, true
	case token.Plus, token.Minus:
		return precUnary, true
	case token.Pound:
		return precConversion, true
	case token.Caret:
		return precConversion, true // ^expr: pointer-follow used prefix, per original_source
	default:
		return 0, false
	}
}

// compoundAssignOps are the operators valid before a bare '=' to form a
// compound assignment (spec section 4.3; grounded on original_source's
// is_compound_assignment). 'not='/'in'/'not in' are deliberately excluded.
func isCompoundAssignOp(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Star, token.Slash, token.KwDiv, token.KwMod, token.KwRem,
		token.Exp, token.KwAnd, token.KwOr, token.KwXor, token.KwShl, token.KwShr, token.Imply:
		return true
	default:
		return false
	}
}
