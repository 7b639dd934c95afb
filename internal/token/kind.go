// Package token defines the Turing lexical token vocabulary: kinds,
// payload-bearing tokens, trivia, and the keyword table.
package token

// Kind classifies a token. The enumeration is closed: the scanner never
// produces a kind outside this set.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident

	// Literals.
	NatLiteral
	RealLiteral
	StringLiteral
	CharLiteral

	// Keywords.
	KwVar
	KwConst
	KwType
	KwForward
	KwPervasive
	KwRegister
	KwBegin
	KwEnd
	KwIf
	KwThen
	KwElsif
	KwElse
	KwEndif
	KwLoop
	KwEndloop
	KwExit
	KwWhen
	KwFor
	KwDecreasing
	KwBy
	KwEndfor
	KwCase
	KwOf
	KwEndcase
	KwInvariant
	KwAssert
	KwSignal
	KwPause
	KwResult
	KwReturn
	KwChecked
	KwUnchecked
	KwProcedure
	KwFunction
	KwString
	KwChar
	KwPointer
	KwTo
	KwArray
	KwFlexible
	KwSet
	KwEnum
	KwCollection
	KwPriority
	KwDeferred
	KwTimeout
	KwCondition
	KwAnd
	KwOr
	KwXor
	KwNot
	KwIn
	KwDiv
	KwMod
	KwRem
	KwTrue
	KwFalse
	KwPut
	KwGet
	KwShl
	KwShr
	KwNil
	KwLabel

	// Primitive type keywords.
	KwInt
	KwInt1
	KwInt2
	KwInt4
	KwNat
	KwNat1
	KwNat2
	KwNat4
	KwReal
	KwReal4
	KwReal8
	KwBoolean
	KwAddressint

	// Record/union type keywords.
	KwRecord
	KwUnion
	KwTag

	// Punctuation / operators.
	Plus
	Minus
	Star
	Slash
	Exp        // **
	Amp        // &
	Pipe       // |
	Tilde      // ~
	Caret      // ^
	Equ        // =
	NotEqu     // not= / ~=
	Less
	LessEqu
	Greater
	GreaterEqu
	Colon
	Assign // :=
	Range  // ..
	Comma
	Dot
	Semicolon
	LParen
	RParen
	Pound // #
	Imply // =>
	Deref // ->
	At    // @
	NotIn // not in / ~in

	ErrorTok
)

// IsLiteral reports whether t carries a NatLiteral/RealLiteral/
// StringLiteral/CharLiteral payload.
func (k Kind) IsLiteral() bool {
	switch k {
	case NatLiteral, RealLiteral, StringLiteral, CharLiteral:
		return true
	default:
		return false
	}
}

// punctNames covers the non-keyword, non-literal kinds with fixed spellings.
var punctNames = map[Kind]string{
	Invalid:     "<invalid>",
	EOF:         "end of file",
	Ident:       "identifier",
	NatLiteral:  "numeric literal",
	RealLiteral: "real literal",
	StringLiteral: "string literal",
	CharLiteral: "char literal",
	Plus:        "'+'",
	Minus:       "'-'",
	Star:        "'*'",
	Slash:       "'/'",
	Exp:         "'**'",
	Amp:         "'&'",
	Pipe:        "'|'",
	Tilde:       "'~'",
	Caret:       "'^'",
	Equ:         "'='",
	NotEqu:      "'not='",
	Less:        "'<'",
	LessEqu:     "'<='",
	Greater:     "'>'",
	GreaterEqu:  "'>='",
	Colon:       "':'",
	Assign:      "':='",
	Range:       "'..'",
	Comma:       "','",
	Dot:         "'.'",
	Semicolon:   "';'",
	LParen:      "'('",
	RParen:      "')'",
	Pound:       "'#'",
	Imply:       "'=>'",
	Deref:       "'->'",
	At:          "'@'",
	NotIn:       "'not in'",
	ErrorTok:    "<error>",
}

// String renders k for use in diagnostic messages. Keyword spellings are
// looked up from the keyword table; everything else from punctNames.
func (k Kind) String() string {
	if name, ok := punctNames[k]; ok {
		return name
	}
	for spelling, kw := range keywords {
		if kw == k {
			return "'" + spelling + "'"
		}
	}
	return "<unknown token>"
}
