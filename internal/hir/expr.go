package hir

import (
	"turingc/internal/arena"
	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/token"
)

// ExprKind enumerates HIR's expression variants. The set is intentionally
// closed and narrow (spec section 3: "Expr: one of Missing, Literal,
// Binary, Unary, Paren, Name"); CST shapes outside this set (calls, dotted
// references, pointer follow/deref, explicit conversions) lower to
// Missing, since runtime call/field semantics are out of scope.
type ExprKind uint8

const (
	ExprMissing ExprKind = iota
	ExprLiteral
	ExprBinary
	ExprUnary
	ExprParen
	ExprName
)

// LiteralKind selects which payload field of a Literal expr is meaningful.
type LiteralKind uint8

const (
	LitInvalid LiteralKind = iota
	LitInt
	LitReal
	LitString
	LitChar
	LitBool
)

// Expr is one arena-resident HIR expression node.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// Literal
	LitKind LiteralKind
	IntVal  uint64
	RealVal float64
	StrVal  source.StringID
	CharVal rune
	BoolVal bool

	// Binary / Unary
	Op     token.Kind
	OpSpan source.Span
	LHS    ids.ExprIdx
	RHS    ids.ExprIdx // also holds Unary's operand

	// Paren
	Inner ids.ExprIdx

	// Name
	Def ids.DefID
}

// ExprTable is the per-unit expression arena.
type ExprTable struct {
	arena *arena.Arena[Expr]
}

func newExprTable() *ExprTable {
	return &ExprTable{arena: arena.New[Expr](64)}
}

func (t *ExprTable) alloc(e Expr) ids.ExprIdx {
	return ids.ExprIdx(t.arena.Alloc(e))
}

func (t *ExprTable) Get(idx ids.ExprIdx) *Expr {
	return t.arena.Get(uint32(idx))
}

func (t *ExprTable) Len() uint32 { return t.arena.Len() }
