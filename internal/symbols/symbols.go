// Package symbols implements the per-unit scope stack and identifier
// table used to resolve names during HIR lowering (spec section 4.5).
package symbols

import (
	"turingc/internal/arena"
	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/types"
)

// ScopeKind distinguishes the handful of scope shapes a unit can open.
type ScopeKind uint8

const (
	ScopeUnit ScopeKind = iota
	ScopeBlock
	ScopeSubprogram
	ScopeRecord
)

// Identifier is one arena-resident entry in a unit's identifier table
// (spec section 3's Identifier entity).
type Identifier struct {
	Name        source.StringID
	Span        source.Span
	Type        types.TypeRef
	IsConst     bool
	IsTypedef   bool
	IsPervasive bool
	IsDeclared  bool // false for a placeholder created by an unresolved Use
	IsCompileEval bool
	Usages      int
}

// DeclareAttrs groups the attributes a caller supplies to Declare.
type DeclareAttrs struct {
	Type        types.TypeRef
	IsConst     bool
	IsTypedef   bool
	IsPervasive bool
}

// Table is the flat arena backing every Identifier a unit declares or
// references, regardless of which scope holds it.
type Table struct {
	arena *arena.Arena[Identifier]
}

func newTable() *Table {
	return &Table{arena: arena.New[Identifier](64)}
}

func (t *Table) Get(id ids.DefID) *Identifier {
	return t.arena.Get(uint32(id))
}

func (t *Table) declare(ident Identifier) ids.DefID {
	return ids.DefID(t.arena.Alloc(ident))
}

// scope is one entry on the scope stack: a name-to-DefID map plus what
// kind of construct opened it.
type scope struct {
	kind  ScopeKind
	names map[source.StringID]ids.DefID
}

// UnitScope is the per-unit scope stack used while lowering one
// compilation unit's CST into HIR (spec section 4.5's UnitScope).
type UnitScope struct {
	Idents *Table
	stack  []*scope

	// all retains every scope ever opened, in opening order, even after
	// PopScope removes it from stack -- lowering discards no history, so
	// a later dump can render each scope's own table rather than only
	// whatever is still open at dump time.
	all []*scope
}

// NewUnitScope returns a UnitScope with a single open unit-level scope.
func NewUnitScope() *UnitScope {
	u := &UnitScope{Idents: newTable()}
	u.PushScope(ScopeUnit)
	return u
}

// PushScope opens a new, empty scope of the given kind.
func (u *UnitScope) PushScope(kind ScopeKind) {
	s := &scope{kind: kind, names: make(map[source.StringID]ids.DefID)}
	u.stack = append(u.stack, s)
	u.all = append(u.all, s)
}

// PopScope closes the innermost scope. Popping the last (unit) scope is a
// caller error and panics, mirroring the arena's own invalid-index panic.
func (u *UnitScope) PopScope() {
	if len(u.stack) <= 1 {
		panic("symbols: PopScope on unit scope")
	}
	u.stack = u.stack[:len(u.stack)-1]
}

func (u *UnitScope) top() *scope { return u.stack[len(u.stack)-1] }

// Declare registers name in the innermost scope and returns its new
// DefID plus whether name was already bound in that same scope. DefIds
// are never re-issued: a redeclaration still allocates a fresh DefId and
// simply rebinds the scope's name map to it, so later Use calls resolve
// to the newest declaration while the old DefId remains valid for
// whatever already referenced it (spec section 3: "a scope frame may
// replace a name binding... recorded as a new DefId with a separate
// instance number"). Whether the redeclaration itself is an error is for
// the validator to decide and report.
func (u *UnitScope) Declare(name source.StringID, span source.Span, attrs DeclareAttrs) (ids.DefID, bool) {
	_, redeclared := u.top().names[name]
	id := u.Idents.declare(Identifier{
		Name:        name,
		Span:        span,
		Type:        attrs.Type,
		IsConst:     attrs.IsConst,
		IsTypedef:   attrs.IsTypedef,
		IsPervasive: attrs.IsPervasive,
		IsDeclared:  true,
	})
	u.top().names[name] = id
	return id, redeclared
}

// Use resolves name against the scope stack from innermost to outermost.
// If found, it returns the existing DefID and isDefined=true. If name is
// not found anywhere on the stack, Use creates a placeholder Identifier
// in the innermost scope and returns isDefined=false -- but only for that
// first, unresolved lookup. Every later Use of the same name within that
// scope's lifetime now finds the placeholder in the scope map and
// returns isDefined=true, since from the map's perspective the name is
// bound; the placeholder's permanently-false IsDeclared field is what
// lets the validator later tell a genuine declaration apart from a
// never-resolved reference (spec section 4.5: "returns is_defined=false
// exactly once per undeclared name").
func (u *UnitScope) Use(name source.StringID, span source.Span) (def ids.DefID, isDefined bool) {
	for i := len(u.stack) - 1; i >= 0; i-- {
		if id, ok := u.stack[i].names[name]; ok {
			if ident := u.Idents.Get(id); ident != nil && ident.IsDeclared {
				ident.Usages++
			}
			return id, true
		}
	}
	id := u.Idents.declare(Identifier{Name: name, Span: span, IsDeclared: false})
	u.top().names[name] = id
	return id, false
}

// ImportTable merges another unit's exported identifiers into the
// current unit scope under the given prefix-free names. Lowering does
// not call it, so no cross-unit lookup takes place. Only identifiers
// already marked IsDeclared are imported; unresolved placeholders never
// cross a unit boundary.
func (u *UnitScope) ImportTable(names map[source.StringID]Identifier) {
	for name, ident := range names {
		if !ident.IsDeclared {
			continue
		}
		id := u.Idents.declare(ident)
		u.top().names[name] = id
	}
}

// ScopeInfo is a read-only snapshot of one scope frame's own table
// (not its ancestors'), exposed for dump tooling.
type ScopeInfo struct {
	Kind  ScopeKind
	Names map[source.StringID]ids.DefID
}

// Scopes returns every scope ever opened on u, in opening order,
// including scopes already closed by PopScope.
func (u *UnitScope) Scopes() []ScopeInfo {
	out := make([]ScopeInfo, len(u.all))
	for i, s := range u.all {
		out[i] = ScopeInfo{Kind: s.kind, Names: s.names}
	}
	return out
}

func (k ScopeKind) String() string {
	switch k {
	case ScopeUnit:
		return "unit"
	case ScopeBlock:
		return "block"
	case ScopeSubprogram:
		return "subprogram"
	case ScopeRecord:
		return "record"
	default:
		return "unknown"
	}
}
