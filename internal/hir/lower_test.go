package hir

import (
	"testing"

	"turingc/internal/cst"
	"turingc/internal/source"
	"turingc/internal/symbols"
	"turingc/internal/token"
	"turingc/internal/types"
)

func ident(in *source.Interner, name string) *cst.Node {
	return &cst.Node{Kind: cst.NameExpr, Children: []cst.Element{
		&cst.Leaf{Tok: token.Token{Kind: token.Ident, Name: in.Intern(name)}},
	}}
}

func natLit(n uint64) *cst.Node {
	return &cst.Node{Kind: cst.LiteralExpr, Children: []cst.Element{
		&cst.Leaf{Tok: token.Token{Kind: token.NatLiteral, Nat: n}},
	}}
}

func primType(k token.Kind) *cst.Node {
	return &cst.Node{Kind: cst.PrimitiveType, Children: []cst.Element{&cst.Leaf{Tok: token.Token{Kind: k}}}}
}

func nameList(in *source.Interner, names ...string) *cst.Node {
	n := &cst.Node{Kind: cst.NameList}
	for _, name := range names {
		n.Children = append(n.Children, &cst.Leaf{Tok: token.Token{Kind: token.Ident, Name: in.Intern(name)}})
	}
	return n
}

func TestLowerVarDeclWithTypeAndInit(t *testing.T) {
	in := source.NewInterner()
	decl := &cst.Node{Kind: cst.VarDecl, Children: []cst.Element{
		nameList(in, "x"),
		primType(token.KwInt),
		natLit(7),
	}}

	u := NewUnit()
	idx := lowerStmt(u, decl)
	s := u.Stmts.Get(idx)
	if s.Kind != StmtConstVar || s.IsConst {
		t.Fatalf("got Kind=%v IsConst=%v, want ConstVar/var", s.Kind, s.IsConst)
	}
	if s.Tail != TailBoth {
		t.Fatalf("Tail = %v, want TailBoth", s.Tail)
	}
	if len(s.Names) != 1 {
		t.Fatalf("Names = %v, want 1 entry", s.Names)
	}
	if !s.TailType.IsPrimitive() || s.TailType.Prim != types.Int {
		t.Fatalf("TailType = %+v, want Primitive(Int)", s.TailType)
	}
	init := u.Exprs.Get(s.TailInit)
	if init.Kind != ExprLiteral || init.LitKind != LitInt || init.IntVal != 7 {
		t.Fatalf("TailInit = %+v, want Literal(Int, 7)", init)
	}
}

func TestLowerBinaryExprAndNameResolution(t *testing.T) {
	in := source.NewInterner()
	u := NewUnit()
	xName := in.Intern("x")
	u.Scope.Declare(xName, source.Span{}, symbols.DeclareAttrs{Type: types.PrimRef(types.Int)})

	bin := &cst.Node{Kind: cst.BinaryExpr, Children: []cst.Element{
		ident(in, "x"),
		&cst.Leaf{Tok: token.Token{Kind: token.Plus}},
		natLit(1),
	}}
	idx := lowerExpr(u, bin)
	e := u.Exprs.Get(idx)
	if e.Kind != ExprBinary || e.Op != token.Plus {
		t.Fatalf("got %+v, want Binary(Plus)", e)
	}
	lhs := u.Exprs.Get(e.LHS)
	if lhs.Kind != ExprName {
		t.Fatalf("lhs = %+v, want Name", lhs)
	}
}

func TestLowerCallExprIsMissing(t *testing.T) {
	in := source.NewInterner()
	u := NewUnit()
	call := &cst.Node{Kind: cst.CallExpr, Children: []cst.Element{
		ident(in, "f"),
		&cst.Leaf{Tok: token.Token{Kind: token.LParen}},
		&cst.Node{Kind: cst.ArgList},
		&cst.Leaf{Tok: token.Token{Kind: token.RParen}},
	}}
	idx := lowerExpr(u, call)
	if u.Exprs.Get(idx).Kind != ExprMissing {
		t.Fatalf("CallExpr did not lower to Missing")
	}
}

func TestLowerBlockPushesAndPopsScope(t *testing.T) {
	in := source.NewInterner()
	inner := &cst.Node{Kind: cst.VarDecl, Children: []cst.Element{nameList(in, "a"), primType(token.KwInt)}}
	block := &cst.Node{Kind: cst.BlockStmt, Children: []cst.Element{inner}}

	u := NewUnit()
	idx := lowerStmt(u, block)
	s := u.Stmts.Get(idx)
	if s.Kind != StmtBlock || len(s.Body) != 1 {
		t.Fatalf("got %+v, want Block with 1 stmt", s)
	}
	if _, isDefined := u.Scope.Use(in.Intern("a"), source.Span{}); isDefined {
		t.Fatalf("block-scoped name leaked into the unit scope after lowering")
	}
}
