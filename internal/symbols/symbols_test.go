package symbols

import (
	"testing"

	"turingc/internal/source"
	"turingc/internal/types"
)

func TestDeclareAndUseResolve(t *testing.T) {
	in := source.NewInterner()
	name := in.Intern("x")

	u := NewUnitScope()
	id, redeclared := u.Declare(name, source.Span{}, DeclareAttrs{Type: types.PrimRef(types.Int)})
	if redeclared {
		t.Fatalf("first declaration reported as redeclared")
	}

	got, isDefined := u.Use(name, source.Span{})
	if !isDefined || got != id {
		t.Fatalf("Use(%q) = (%v, %v), want (%v, true)", "x", got, isDefined, id)
	}
}

func TestUseUndeclaredExactlyOnceFalse(t *testing.T) {
	in := source.NewInterner()
	name := in.Intern("y")
	u := NewUnitScope()

	_, first := u.Use(name, source.Span{})
	if first {
		t.Fatalf("first Use of undeclared name reported isDefined=true")
	}

	_, second := u.Use(name, source.Span{})
	if !second {
		t.Fatalf("second Use of the same (now placeholder-bound) name reported isDefined=false")
	}
}

func TestDeclareRedeclarationAllocatesNewDefID(t *testing.T) {
	in := source.NewInterner()
	name := in.Intern("z")
	u := NewUnitScope()

	first, redeclared1 := u.Declare(name, source.Span{}, DeclareAttrs{})
	if redeclared1 {
		t.Fatalf("first declaration reported as redeclared")
	}
	second, redeclared2 := u.Declare(name, source.Span{}, DeclareAttrs{})
	if !redeclared2 {
		t.Fatalf("second declaration of the same name in the same scope not flagged")
	}
	if first == second {
		t.Fatalf("redeclaration reused the old DefID %v instead of allocating a new one", first)
	}

	got, _ := u.Use(name, source.Span{})
	if got != second {
		t.Fatalf("Use after redeclaration resolved to %v, want the newest DefID %v", got, second)
	}
}

func TestScopeShadowing(t *testing.T) {
	in := source.NewInterner()
	name := in.Intern("n")
	u := NewUnitScope()

	outer, _ := u.Declare(name, source.Span{}, DeclareAttrs{})
	u.PushScope(ScopeBlock)
	inner, _ := u.Declare(name, source.Span{}, DeclareAttrs{})
	if inner == outer {
		t.Fatalf("inner declaration collided with outer DefID")
	}
	if got, _ := u.Use(name, source.Span{}); got != inner {
		t.Fatalf("Use inside block resolved to %v, want the shadowing inner DefID %v", got, inner)
	}
	u.PopScope()
	if got, _ := u.Use(name, source.Span{}); got != outer {
		t.Fatalf("Use after popping block resolved to %v, want outer DefID %v", got, outer)
	}
}

func TestPopScopeOnUnitScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("PopScope on the unit scope did not panic")
		}
	}()
	NewUnitScope().PopScope()
}
