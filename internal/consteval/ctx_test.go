package consteval

import (
	"testing"

	"turingc/internal/cst"
	"turingc/internal/hir"
	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/token"
)

func natLit(n uint64) *cst.Node {
	return &cst.Node{Kind: cst.LiteralExpr, Children: []cst.Element{
		&cst.Leaf{Tok: token.Token{Kind: token.NatLiteral, Nat: n}},
	}}
}

func ident(in *source.Interner, name string) *cst.Node {
	return &cst.Node{Kind: cst.NameExpr, Children: []cst.Element{
		&cst.Leaf{Tok: token.Token{Kind: token.Ident, Name: in.Intern(name)}},
	}}
}

func nameList(in *source.Interner, names ...string) *cst.Node {
	n := &cst.Node{Kind: cst.NameList}
	for _, name := range names {
		n.Children = append(n.Children, &cst.Leaf{Tok: token.Token{Kind: token.Ident, Name: in.Intern(name)}})
	}
	return n
}

func binExpr(op token.Kind, lhs, rhs *cst.Node) *cst.Node {
	return &cst.Node{Kind: cst.BinaryExpr, Children: []cst.Element{
		lhs, &cst.Leaf{Tok: token.Token{Kind: op}}, rhs,
	}}
}

func unaryExpr(op token.Kind, operand *cst.Node) *cst.Node {
	return &cst.Node{Kind: cst.UnaryExpr, Children: []cst.Element{
		&cst.Leaf{Tok: token.Token{Kind: op}}, operand,
	}}
}

// constDecl builds "const <name> := <init>" and returns its root node.
func constDecl(in *source.Interner, name string, init *cst.Node) *cst.Node {
	return &cst.Node{Kind: cst.ConstDecl, Children: []cst.Element{
		nameList(in, name), init,
	}}
}

// firstConstInit lowers a single top-level const decl and returns the
// expression index of its initializer.
func firstConstInit(t *testing.T, decl *cst.Node) (*hir.Unit, ids.ExprIdx) {
	t.Helper()
	root := &cst.Node{Kind: cst.SourceFile, Children: []cst.Element{decl}}
	u := hir.Lower(root)
	if len(u.Top) != 1 {
		t.Fatalf("got %d top-level stmts, want 1", len(u.Top))
	}
	s := u.Stmts.Get(u.Top[0])
	if s.Kind != hir.StmtConstVar {
		t.Fatalf("got Kind=%v, want StmtConstVar", s.Kind)
	}
	return u, s.TailInit
}

func TestEvalLiteral(t *testing.T) {
	in := source.NewInterner()
	u, expr := firstConstInit(t, constDecl(in, "x", natLit(7)))

	c := NewCtx(u, 0, false)
	ce := c.DeferExpr(0, expr)
	v, err := c.EvalExpr(ce)
	if err != nil {
		t.Fatalf("EvalExpr error: %+v", err)
	}
	if v.Kind != ValInteger || v.Int.AsInt64() != 7 {
		t.Fatalf("got %+v, want Integer(7)", v)
	}
}

func TestEvalBinaryArithmetic(t *testing.T) {
	in := source.NewInterner()
	// (3 + 4) * 2
	sum := binExpr(token.Plus, natLit(3), natLit(4))
	mul := binExpr(token.Star, sum, natLit(2))
	u, expr := firstConstInit(t, constDecl(in, "x", mul))

	c := NewCtx(u, 0, false)
	ce := c.DeferExpr(0, expr)
	v, err := c.EvalExpr(ce)
	if err != nil {
		t.Fatalf("EvalExpr error: %+v", err)
	}
	if v.Kind != ValInteger || v.Int.AsInt64() != 14 {
		t.Fatalf("got %+v, want Integer(14)", v)
	}
}

func TestEvalUnaryMinus(t *testing.T) {
	in := source.NewInterner()
	neg := unaryExpr(token.Minus, natLit(5))
	u, expr := firstConstInit(t, constDecl(in, "x", neg))

	c := NewCtx(u, 0, false)
	ce := c.DeferExpr(0, expr)
	v, err := c.EvalExpr(ce)
	if err != nil {
		t.Fatalf("EvalExpr error: %+v", err)
	}
	if v.Kind != ValInteger || v.Int.AsInt64() != -5 {
		t.Fatalf("got %+v, want Integer(-5)", v)
	}
}

func TestEvalDivByZero(t *testing.T) {
	in := source.NewInterner()
	div := binExpr(token.KwDiv, natLit(1), natLit(0))
	u, expr := firstConstInit(t, constDecl(in, "x", div))

	c := NewCtx(u, 0, false)
	ce := c.DeferExpr(0, expr)
	_, err := c.EvalExpr(ce)
	if err == nil || err.Err != DivByZero {
		t.Fatalf("got %+v, want DivByZero", err)
	}
}

func TestEvalNestedParenExpr(t *testing.T) {
	in := source.NewInterner()
	// (2 + (3 * 4))
	inner := binExpr(token.Star, natLit(3), natLit(4))
	paren := &cst.Node{Kind: cst.ParenExpr, Children: []cst.Element{inner}}
	sum := binExpr(token.Plus, natLit(2), paren)
	u, expr := firstConstInit(t, constDecl(in, "x", sum))

	c := NewCtx(u, 0, false)
	ce := c.DeferExpr(0, expr)
	v, err := c.EvalExpr(ce)
	if err != nil {
		t.Fatalf("EvalExpr error: %+v", err)
	}
	if v.Kind != ValInteger || v.Int.AsInt64() != 14 {
		t.Fatalf("got %+v, want Integer(14)", v)
	}
}

func TestEvalVarResolvesThroughName(t *testing.T) {
	in := source.NewInterner()
	root := &cst.Node{Kind: cst.SourceFile, Children: []cst.Element{
		constDecl(in, "a", natLit(10)),
		constDecl(in, "b", binExpr(token.Plus, ident(in, "a"), natLit(1))),
	}}
	u := hir.Lower(root)
	if len(u.Top) != 2 {
		t.Fatalf("got %d top-level stmts, want 2", len(u.Top))
	}
	aStmt := u.Stmts.Get(u.Top[0])
	bStmt := u.Stmts.Get(u.Top[1])

	c := NewCtx(u, 0, false)
	aCE := c.DeferExpr(0, aStmt.TailInit)
	c.AddVar(ids.GlobalDefID{Unit: 0, Def: aStmt.Names[0]}, aCE)
	bCE := c.DeferExpr(0, bStmt.TailInit)

	v, err := c.EvalExpr(bCE)
	if err != nil {
		t.Fatalf("EvalExpr error: %+v", err)
	}
	if v.Kind != ValInteger || v.Int.AsInt64() != 11 {
		t.Fatalf("got %+v, want Integer(11)", v)
	}
}

func TestEvalCycleDetected(t *testing.T) {
	in := source.NewInterner()
	root := &cst.Node{Kind: cst.SourceFile, Children: []cst.Element{
		constDecl(in, "a", ident(in, "a")),
	}}
	u := hir.Lower(root)
	aStmt := u.Stmts.Get(u.Top[0])

	c := NewCtx(u, 0, false)
	ce := c.DeferExpr(0, aStmt.TailInit)
	c.AddVar(ids.GlobalDefID{Unit: 0, Def: aStmt.Names[0]}, ce)

	_, err := c.EvalExpr(ce)
	if err == nil || err.Err != EvalCycle {
		t.Fatalf("got %+v, want EvalCycle", err)
	}
}
