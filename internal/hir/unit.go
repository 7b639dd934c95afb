package hir

import (
	"turingc/internal/ids"
	"turingc/internal/symbols"
	"turingc/internal/types"
)

// Unit bundles one compilation unit's HIR arenas, its type table, and its
// scope stack: everything lowering appends to and everything the
// validator and constant evaluator later read from (spec section 3's
// Lifecycle: "all arenas are created when a compilation unit is
// constructed and live until the unit is discarded").
type Unit struct {
	Exprs *ExprTable
	Stmts *StmtTable
	Types *types.Table
	Scope *symbols.UnitScope

	// Top is the ordered list of statements lowered directly from the
	// source file's top-level statement sequence.
	Top []ids.StmtIdx
}

// NewUnit returns an empty Unit ready for lowering.
func NewUnit() *Unit {
	return &Unit{
		Exprs: newExprTable(),
		Stmts: newStmtTable(),
		Types: types.NewTable(),
		Scope: symbols.NewUnitScope(),
	}
}
