package token

import "turingc/internal/source"

// Token is one lexical unit: a kind, its span in source, and an optional
// payload. Exactly the kinds in Kind.IsLiteral carry a non-zero payload;
// Ident carries Name.
type Token struct {
	Kind Kind
	Span source.Span

	// Payload. At most one of these is meaningful, selected by Kind.
	Nat    uint64
	Real   float64
	Name   source.StringID // Ident
	Str    source.StringID // StringLiteral, interned with escapes resolved
	Char   rune            // CharLiteral, resolved code point

	// LeadingTrivia holds whitespace/comments consumed before this token,
	// preserved so the CST can round-trip source exactly.
	LeadingTrivia []Trivia
}

// IsKeyword reports whether t.Kind is one of the KwXxx constants.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwVar && t.Kind <= KwTag
}
