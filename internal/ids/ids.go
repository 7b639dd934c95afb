// Package ids defines the opaque arena/table handles shared by hir,
// types, and symbols (spec section 3's "HIR lives in per-unit arenas
// indexed by opaque handles"). Collecting them here, rather than letting
// each owning package define its own, breaks what would otherwise be an
// import cycle: types.Type needs an expression handle for deferred size
// expressions, and hir.Stmt needs a type handle for declaration tails.
package ids

// ExprIdx indexes hir's expression arena. Zero (NoExprIdx) means absent.
type ExprIdx uint32

const NoExprIdx ExprIdx = 0

func (i ExprIdx) IsValid() bool { return i != NoExprIdx }

// StmtIdx indexes hir's statement arena.
type StmtIdx uint32

const NoStmtIdx StmtIdx = 0

func (i StmtIdx) IsValid() bool { return i != NoStmtIdx }

// TypeIdx indexes the type table's arena.
type TypeIdx uint32

const NoTypeIdx TypeIdx = 0

func (i TypeIdx) IsValid() bool { return i != NoTypeIdx }

// UnitID identifies a compilation unit.
type UnitID uint32

const NoUnitID UnitID = 0

// DefID identifies a declared identifier within one unit's symbol table.
type DefID uint32

const NoDefID DefID = 0

func (i DefID) IsValid() bool { return i != NoDefID }

// GlobalDefID pairs a DefID with the unit that owns it, for references
// that must survive outside their declaring unit's own arenas.
type GlobalDefID struct {
	Def  DefID
	Unit UnitID
}
