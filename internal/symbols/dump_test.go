package symbols

import (
	"strings"
	"testing"

	"turingc/internal/source"
	"turingc/internal/types"
)

func TestDumpScopesIncludesClosedScopes(t *testing.T) {
	in := source.NewInterner()
	u := NewUnitScope()
	u.Declare(in.Intern("x"), source.Span{}, DeclareAttrs{Type: types.PrimRef(types.Int), IsConst: true})

	u.PushScope(ScopeBlock)
	id, _ := u.Declare(in.Intern("y"), source.Span{}, DeclareAttrs{Type: types.PrimRef(types.Nat)})
	u.Use(in.Intern("y"), source.Span{})
	_ = id
	u.PopScope()

	scopes := DumpScopes(u, in)
	if len(scopes) != 2 {
		t.Fatalf("DumpScopes returned %d scopes, want 2 (unit + block, block retained after pop)", len(scopes))
	}
	if scopes[0].Kind != "unit" || scopes[1].Kind != "block" {
		t.Fatalf("kinds = %q, %q, want unit, block", scopes[0].Kind, scopes[1].Kind)
	}

	var yEntry *EntryDump
	for i := range scopes[1].Entries {
		if scopes[1].Entries[i].Name == "y" {
			yEntry = &scopes[1].Entries[i]
		}
	}
	if yEntry == nil {
		t.Fatal("expected block scope to retain its 'y' entry after PopScope")
	}
	if yEntry.Usages != 1 {
		t.Fatalf("y usages = %d, want 1", yEntry.Usages)
	}
}

func TestRenderScopesProducesOneSectionPerScope(t *testing.T) {
	in := source.NewInterner()
	u := NewUnitScope()
	u.Declare(in.Intern("x"), source.Span{}, DeclareAttrs{IsConst: true})

	var sb strings.Builder
	if err := RenderScopes(&sb, DumpScopes(u, in)); err != nil {
		t.Fatalf("RenderScopes returned error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "scope #0") || !strings.Contains(out, "x") || !strings.Contains(out, "const") {
		t.Fatalf("expected scope header, name, and const attr, got:\n%s", out)
	}
}
