package types

import "testing"

func TestTableDeclareGet(t *testing.T) {
	tbl := NewTable()
	idx := tbl.Declare(Type{Kind: KindAlias, AliasTo: PrimRef(Int)})
	got := tbl.Get(idx)
	if got == nil || got.Kind != KindAlias {
		t.Fatalf("Get(%d) = %+v, want KindAlias", idx, got)
	}
}

func TestDealiasChain(t *testing.T) {
	tbl := NewTable()
	base := tbl.Declare(Type{Kind: KindAlias, AliasTo: PrimRef(Nat)})
	mid := tbl.Declare(Type{Kind: KindAlias, AliasTo: NamedRef(base)})

	got := tbl.Dealias(NamedRef(mid))
	if !got.IsPrimitive() || got.Prim != Nat {
		t.Fatalf("Dealias chain = %+v, want Primitive(Nat)", got)
	}
}

func TestDealiasStopsOnNonAlias(t *testing.T) {
	tbl := NewTable()
	arr := tbl.Declare(Type{Kind: KindArray, Elem: PrimRef(Int)})
	got := tbl.Dealias(NamedRef(arr))
	if got.Kind != RefNamed || got.Named != arr {
		t.Fatalf("Dealias(non-alias) = %+v, want unchanged", got)
	}
}

func TestDealiasCycleTerminates(t *testing.T) {
	tbl := NewTable()
	a := tbl.Declare(Type{Kind: KindAlias})
	b := tbl.Declare(Type{Kind: KindAlias, AliasTo: NamedRef(a)})
	tbl.Replace(a, Type{Kind: KindAlias, AliasTo: NamedRef(b)})

	got := tbl.Dealias(NamedRef(a))
	if got.Kind != RefNamed {
		t.Fatalf("Dealias on a cycle returned %+v, want a stopped NamedRef", got)
	}
}

func TestPrimitiveKindClassification(t *testing.T) {
	if !Int.IsInteger() || Int.IsReal() {
		t.Fatalf("Int classification wrong")
	}
	if !Real8.IsReal() || Real8.IsInteger() {
		t.Fatalf("Real8 classification wrong")
	}
	if !Addressint.IsInteger() {
		t.Fatalf("Addressint should be an integer kind")
	}
}

func TestTypeErrorIsError(t *testing.T) {
	if !TypeError.IsError() {
		t.Fatalf("TypeError.IsError() = false")
	}
	if PrimRef(Int).IsError() {
		t.Fatalf("Primitive(Int).IsError() = true")
	}
}
