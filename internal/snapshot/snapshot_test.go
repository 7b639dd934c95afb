package snapshot

import (
	"testing"

	"turingc/internal/hir"
	"turingc/internal/types"
)

func TestPutGetRoundTrips(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	payload := NewPayload(
		&hir.Node{Label: "block", Children: []*hir.Node{{Label: "42"}}},
		nil,
		[]types.EntryDump{{Index: 1, Kind: "alias", Repr: "alias-to=int"}},
	)
	key := Key([]byte("var x : int := 42"), []string{"ast", "types"})

	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit after Put")
	}
	if got.AST == nil || got.AST.Label != "block" || len(got.AST.Children) != 1 {
		t.Fatalf("AST round-trip mismatch: %+v", got.AST)
	}
	if len(got.Types) != 1 || got.Types[0].Kind != "alias" {
		t.Fatalf("Types round-trip mismatch: %+v", got.Types)
	}
}

func TestGetMissReturnsFalseNoError(t *testing.T) {
	cache, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	_, ok, err := cache.Get(Key([]byte("nothing cached"), []string{"ast"}))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Fatal("expected a cache miss for an unwritten key")
	}
}

func TestKeyDiffersByTargets(t *testing.T) {
	content := []byte("const x := 1")
	a := Key(content, []string{"ast"})
	b := Key(content, []string{"ast", "scope"})
	if a == b {
		t.Fatal("expected different dump target sets to produce different keys")
	}
}
