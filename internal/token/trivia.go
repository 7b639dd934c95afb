package token

import "turingc/internal/source"

// TriviaKind classifies a run of non-significant source text.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaLineComment
	TriviaBlockComment
)

// Trivia is whitespace or a comment attached to the token that follows it.
// Carrying trivia on tokens (rather than discarding it in the scanner) is
// what lets the CST reproduce source text byte-for-byte.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
}
