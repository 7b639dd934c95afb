package cst_test

import (
	"testing"

	"turingc/internal/cst"
	"turingc/internal/source"
	"turingc/internal/token"
)

func TestBuilderRoundTripsText(t *testing.T) {
	content := []byte("var a := 1")
	fs := source.NewFileSet()
	id := fs.Add("t.t", content)

	tok := func(k token.Kind, start, end uint32) token.Token {
		return token.Token{Kind: k, Span: source.Span{File: id, Start: start, End: end}}
	}
	ws := func(start, end uint32) token.Trivia {
		return token.Trivia{Kind: token.TriviaWhitespace, Span: source.Span{File: id, Start: start, End: end}}
	}

	b := cst.NewBuilder()
	b.Start(cst.VarDecl)
	b.PushToken(tok(token.KwVar, 0, 3))
	ident := tok(token.Ident, 4, 5)
	ident.LeadingTrivia = []token.Trivia{ws(3, 4)}
	b.PushToken(ident)
	assign := tok(token.Assign, 6, 8)
	assign.LeadingTrivia = []token.Trivia{ws(5, 6)}
	b.PushToken(assign)
	nat := tok(token.NatLiteral, 9, 10)
	nat.LeadingTrivia = []token.Trivia{ws(8, 9)}
	b.PushToken(nat)
	root := b.Finish()

	if root.Kind != cst.VarDecl {
		t.Fatalf("got kind %v, want VarDecl", root.Kind)
	}
	got := cst.Text(root, content)
	if got != string(content) {
		t.Fatalf("got %q, want %q", got, string(content))
	}
}

func TestNestedNodes(t *testing.T) {
	content := []byte("(1)")
	fs := source.NewFileSet()
	id := fs.Add("t.t", content)
	tok := func(k token.Kind, start, end uint32) token.Token {
		return token.Token{Kind: k, Span: source.Span{File: id, Start: start, End: end}}
	}

	b := cst.NewBuilder()
	b.Start(cst.ParenExpr)
	b.PushToken(tok(token.LParen, 0, 1))
	b.Start(cst.LiteralExpr)
	b.PushToken(tok(token.NatLiteral, 1, 2))
	b.Finish()
	b.PushToken(tok(token.RParen, 2, 3))
	root := b.Finish()

	if len(root.ChildNodes()) != 1 {
		t.Fatalf("expected one child node, got %d", len(root.ChildNodes()))
	}
	if cst.Text(root, content) != "(1)" {
		t.Fatalf("got %q", cst.Text(root, content))
	}
}
