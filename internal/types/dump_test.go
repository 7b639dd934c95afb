package types

import (
	"strings"
	"testing"
)

func TestDumpReturnsOneEntryPerDeclaration(t *testing.T) {
	tbl := NewTable()
	tbl.Declare(Type{Kind: KindAlias, AliasTo: PrimRef(Int)})
	tbl.Declare(Type{Kind: KindArray, Elem: PrimRef(Nat)})

	entries := Dump(tbl)
	if len(entries) != 2 {
		t.Fatalf("Dump returned %d entries, want 2", len(entries))
	}
	if entries[0].Index != 1 || entries[1].Index != 2 {
		t.Fatalf("indices = %d, %d, want 1, 2 (1-based arena order)", entries[0].Index, entries[1].Index)
	}
	if entries[0].Kind != "alias" || entries[1].Kind != "array" {
		t.Fatalf("kinds = %q, %q, want alias, array", entries[0].Kind, entries[1].Kind)
	}
}

func TestRenderTypesProducesOneLinePerEntry(t *testing.T) {
	tbl := NewTable()
	tbl.Declare(Type{Kind: KindPointer, To: PrimRef(Char)})

	var sb strings.Builder
	if err := RenderTypes(&sb, Dump(tbl)); err != nil {
		t.Fatalf("RenderTypes returned error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "pointer") || !strings.Contains(out, "char") {
		t.Fatalf("expected pointer/char in output, got:\n%s", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected exactly one line, got:\n%s", out)
	}
}
