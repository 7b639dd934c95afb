package hir

import (
	"turingc/internal/arena"
	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/token"
	"turingc/internal/types"
)

// StmtKind enumerates HIR's statement variants. ConstVar, Assign, Put,
// Get, and Block are spec section 3's named core; the rest are the
// "reserved set of to-be-added variants" it leaves room for, added here
// to give every parser statement rule a lowering target.
type StmtKind uint8

const (
	StmtMissing StmtKind = iota
	StmtConstVar
	StmtAssign
	StmtPut
	StmtGet
	StmtBlock
	StmtIf
	StmtLoop
	StmtExit
	StmtFor
	StmtCase
	StmtExprKeyword
	StmtReturn
	StmtChecked
	StmtProcCall
	StmtTypeDecl
	StmtSubprogram
)

// TailKind selects which of ConstVar's declaration tail fields is
// meaningful, encoding "at least one of type and initializer is present"
// (spec section 3).
type TailKind uint8

const (
	TailInvalid TailKind = iota
	TailTypeSpec
	TailInitExpr
	TailBoth
)

// ElsifArm is one "elsif cond then body" clause of an If statement.
type ElsifArm struct {
	Cond ids.ExprIdx
	Body []ids.StmtIdx
}

// CaseArm is one "label list : body" clause of a Case statement; a nil
// Labels slice marks the default arm.
type CaseArm struct {
	Labels []ids.ExprIdx
	Body   []ids.StmtIdx
}

// Stmt is one arena-resident HIR statement node. Fields are grouped by
// which Kind makes them meaningful.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	// ConstVar
	Names    []ids.DefID
	IsConst  bool
	Tail     TailKind
	TailType types.TypeRef
	TailInit ids.ExprIdx

	// Assign / ProcCall: LHS/Callee share Expr; Op is token.Assign for
	// plain assignment or the underlying operator kind for a compound
	// assignment (e.g. token.Plus for "+=").
	Expr ids.ExprIdx
	Op   token.Kind
	RHS  ids.ExprIdx

	// Put / Get
	Items []ids.ExprIdx

	// Block / Loop / Checked body / If-then / For body
	Body []ids.StmtIdx

	// If
	Cond  ids.ExprIdx
	Elifs []ElsifArm
	Else  []ids.StmtIdx

	// Exit: When is NoExprIdx for an unconditional exit.
	When ids.ExprIdx

	// For
	LoopVar    ids.DefID
	Decreasing bool
	Range      types.TypeRef
	Step       ids.ExprIdx

	// Case
	Arms []CaseArm

	// ExprKeyword (invariant/assert/signal/pause/result) / Checked /
	// Unchecked: which keyword this node represents.
	Keyword token.Kind

	// TypeDecl
	Name      ids.DefID
	IsForward bool
	DeclType  types.TypeRef

	// Subprogram
	IsFunction bool
	Params     []ids.DefID
	Result     types.TypeRef
}

// StmtTable is the per-unit statement arena.
type StmtTable struct {
	arena *arena.Arena[Stmt]
}

func newStmtTable() *StmtTable {
	return &StmtTable{arena: arena.New[Stmt](64)}
}

func (t *StmtTable) alloc(s Stmt) ids.StmtIdx {
	return ids.StmtIdx(t.arena.Alloc(s))
}

func (t *StmtTable) Get(idx ids.StmtIdx) *Stmt {
	return t.arena.Get(uint32(idx))
}

func (t *StmtTable) Len() uint32 { return t.arena.Len() }
