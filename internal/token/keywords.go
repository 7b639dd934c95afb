package token

// keywords maps exact spellings to their Kind. Turing keywords are
// case-sensitive: "Var" and "VAR" are plain identifiers, only "var" is
// the keyword.
var keywords = map[string]Kind{
	"var":        KwVar,
	"const":      KwConst,
	"type":       KwType,
	"forward":    KwForward,
	"pervasive":  KwPervasive,
	"register":   KwRegister,
	"begin":      KwBegin,
	"end":        KwEnd,
	"if":         KwIf,
	"then":       KwThen,
	"elsif":      KwElsif,
	"else":       KwElse,
	"endif":      KwEndif,
	"loop":       KwLoop,
	"endloop":    KwEndloop,
	"exit":       KwExit,
	"when":       KwWhen,
	"for":        KwFor,
	"decreasing": KwDecreasing,
	"by":         KwBy,
	"endfor":     KwEndfor,
	"case":       KwCase,
	"of":         KwOf,
	"endcase":    KwEndcase,
	"invariant":  KwInvariant,
	"assert":     KwAssert,
	"signal":     KwSignal,
	"pause":      KwPause,
	"result":     KwResult,
	"return":     KwReturn,
	"checked":    KwChecked,
	"unchecked":  KwUnchecked,
	"procedure":  KwProcedure,
	"function":   KwFunction,
	"string":     KwString,
	"char":       KwChar,
	"pointer":    KwPointer,
	"to":         KwTo,
	"array":      KwArray,
	"flexible":   KwFlexible,
	"set":        KwSet,
	"enum":       KwEnum,
	"collection": KwCollection,
	"priority":   KwPriority,
	"deferred":   KwDeferred,
	"timeout":    KwTimeout,
	"condition":  KwCondition,
	"and":        KwAnd,
	"or":         KwOr,
	"xor":        KwXor,
	"not":        KwNot,
	"in":         KwIn,
	"div":        KwDiv,
	"mod":        KwMod,
	"rem":        KwRem,
	"true":       KwTrue,
	"false":      KwFalse,
	"put":        KwPut,
	"get":        KwGet,
	"shl":        KwShl,
	"shr":        KwShr,
	"nil":        KwNil,
	"label":      KwLabel,

	"int":        KwInt,
	"int1":       KwInt1,
	"int2":       KwInt2,
	"int4":       KwInt4,
	"nat":        KwNat,
	"nat1":       KwNat1,
	"nat2":       KwNat2,
	"nat4":       KwNat4,
	"real":       KwReal,
	"real4":      KwReal4,
	"real8":      KwReal8,
	"boolean":    KwBoolean,
	"addressint": KwAddressint,

	"record": KwRecord,
	"union":  KwUnion,
	"tag":    KwTag,
}

// LookupKeyword returns the keyword Kind for an exact, case-sensitive
// spelling, or (Ident, false) if text is a plain identifier.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
