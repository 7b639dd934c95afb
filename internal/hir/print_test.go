package hir

import (
	"strings"
	"testing"

	"turingc/internal/cst"
	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/symbols"
	"turingc/internal/token"
)

func TestBuildASTRendersVarDeclAsSExpression(t *testing.T) {
	in := source.NewInterner()
	decl := &cst.Node{Kind: cst.VarDecl, Children: []cst.Element{
		nameList(in, "x"),
		primType(token.KwInt),
		natLit(7),
	}}

	u := NewUnit()
	u.Top = []ids.StmtIdx{lowerStmt(u, decl)}

	var sb strings.Builder
	if err := Dump(&sb, u, in); err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	out := sb.String()

	for _, want := range []string{"(block", "(var", "(names", "x", "int", "(init", "7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump output missing %q; got:\n%s", want, out)
		}
	}
}

func TestBuildASTBinaryExprUsesOperatorAsLabel(t *testing.T) {
	in := source.NewInterner()
	bin := &cst.Node{Kind: cst.BinaryExpr, Children: []cst.Element{
		natLit(1),
		&cst.Leaf{Tok: token.Token{Kind: token.Plus}},
		natLit(2),
	}}
	opNode := &cst.Node{Kind: cst.ErrorNode, Children: []cst.Element{
		&cst.Leaf{Tok: token.Token{Kind: token.Assign}},
	}}
	assign := &cst.Node{Kind: cst.AssignStmt, Children: []cst.Element{
		ident(in, "x"),
		opNode,
		bin,
	}}

	u := NewUnit()
	u.Scope.Declare(in.Intern("x"), source.Span{}, symbols.DeclareAttrs{})
	u.Top = []ids.StmtIdx{lowerStmt(u, assign)}

	var sb strings.Builder
	if err := Dump(&sb, u, in); err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "(assign") || !strings.Contains(out, "("+opLabel(token.Plus)) {
		t.Fatalf("expected assign/binary shape with %q operator, got:\n%s", opLabel(token.Plus), out)
	}
}
