package lexer_test

import (
	"testing"

	"turingc/internal/diag"
	"turingc/internal/lexer"
	"turingc/internal/source"
	"turingc/internal/token"
)

// testReporter collects every diagnostic the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, footers []diag.Footer) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes, Footers: footers,
	})
}

func (r *testReporter) hasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

func newTestLexer(t *testing.T, src string) (*lexer.Lexer, *testReporter, *source.Interner) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.t", []byte(src))
	in := source.NewInterner()
	rep := &testReporter{}
	lx := lexer.New(fs.Get(id), in, lexer.Options{Reporter: rep, Allow64BitOps: true})
	return lx, rep, in
}

func collectKinds(lx *lexer.Lexer) []token.Kind {
	var kinds []token.Kind
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func TestScansVarDecl(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "var a : int := 1")
	kinds := collectKinds(lx)
	want := []token.Kind{
		token.KwVar, token.Ident, token.Colon, token.KwInt, token.Assign, token.NatLiteral, token.EOF,
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Fatalf("token %d: got %v, want %v (full: %v)", i, kinds[i], k, kinds)
		}
	}
	if rep.hasErrors() {
		t.Fatalf("unexpected lexer errors: %v", rep.diagnostics)
	}
	if len(kinds) != 7 {
		t.Fatalf("got %d tokens, want 7: %v", len(kinds), kinds)
	}
}

func TestNatLiteral(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "42")
	tok := lx.Next()
	if tok.Kind != token.NatLiteral || tok.Nat != 42 {
		t.Fatalf("got %+v, want NatLiteral(42)", tok)
	}
	if rep.hasErrors() {
		t.Fatalf("unexpected errors: %v", rep.diagnostics)
	}
}

func TestRadixLiteral(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "16#ff")
	tok := lx.Next()
	if tok.Kind != token.NatLiteral || tok.Nat != 255 {
		t.Fatalf("got %+v, want NatLiteral(255)", tok)
	}
	if rep.hasErrors() {
		t.Fatalf("unexpected errors: %v", rep.diagnostics)
	}
}

func TestBadRadixBase(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "99#11")
	_ = lx.Next()
	if !rep.hasErrors() {
		t.Fatalf("expected a base-out-of-range error")
	}
}

func TestIntLiteralTooLarge(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "999999999999999999999")
	tok := lx.Next()
	if tok.Kind != token.NatLiteral || tok.Nat != 0 {
		t.Fatalf("got %+v, want NatLiteral(0)", tok)
	}
	if !rep.hasErrors() {
		t.Fatalf("expected an overflow error")
	}
}

func TestRealLiteral(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "3.14e2")
	tok := lx.Next()
	if tok.Kind != token.RealLiteral || tok.Real != 314 {
		t.Fatalf("got %+v, want RealLiteral(314)", tok)
	}
	if rep.hasErrors() {
		t.Fatalf("unexpected errors: %v", rep.diagnostics)
	}
}

func TestLeadingDotReal(t *testing.T) {
	lx, _, _ := newTestLexer(t, ".5")
	tok := lx.Next()
	if tok.Kind != token.RealLiteral || tok.Real != 0.5 {
		t.Fatalf("got %+v, want RealLiteral(0.5)", tok)
	}
}

func TestRealLiteralOverflowYieldsZero(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "1e400")
	tok := lx.Next()
	if tok.Kind != token.RealLiteral || tok.Real != 0.0 {
		t.Fatalf("got %+v, want RealLiteral(0.0)", tok)
	}
	if !rep.hasErrors() {
		t.Fatalf("expected an overflow error")
	}
}

func TestRealLiteralMissingExponentDigitYieldsZero(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "1e+")
	tok := lx.Next()
	if tok.Kind != token.RealLiteral || tok.Real != 0.0 {
		t.Fatalf("got %+v, want RealLiteral(0.0)", tok)
	}
	if !rep.hasErrors() {
		t.Fatalf("expected a bad-exponent error")
	}
}

func TestBadRadixBaseYieldsZero(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "99#11")
	tok := lx.Next()
	if tok.Kind != token.NatLiteral || tok.Nat != 0 {
		t.Fatalf("got %+v, want NatLiteral(0)", tok)
	}
	if !rep.hasErrors() {
		t.Fatalf("expected a base-out-of-range error")
	}
}

func TestRadixMissingDigitsYieldsZero(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "16#")
	tok := lx.Next()
	if tok.Kind != token.NatLiteral || tok.Nat != 0 {
		t.Fatalf("got %+v, want NatLiteral(0)", tok)
	}
	if !rep.hasErrors() {
		t.Fatalf("expected a missing-digits error")
	}
}

func TestRadixBadDigitYieldsZero(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "2#129")
	tok := lx.Next()
	if tok.Kind != token.NatLiteral || tok.Nat != 0 {
		t.Fatalf("got %+v, want NatLiteral(0)", tok)
	}
	if !rep.hasErrors() {
		t.Fatalf("expected a bad-radix-digit error")
	}
}

func TestStringEscapes(t *testing.T) {
	lx, rep, in := newTestLexer(t, `"a\tb\101^A"`)
	tok := lx.Next()
	if tok.Kind != token.StringLiteral {
		t.Fatalf("got %+v, want StringLiteral", tok)
	}
	got := in.MustLookup(tok.Str)
	want := "a\tbA\x01"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if rep.hasErrors() {
		t.Fatalf("unexpected errors: %v", rep.diagnostics)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "\"abc")
	_ = lx.Next()
	if !rep.hasErrors() {
		t.Fatalf("expected an unterminated-string error")
	}
}

func TestNotInStitching(t *testing.T) {
	lx, _, _ := newTestLexer(t, "x not in y")
	kinds := collectKinds(lx)
	want := []token.Kind{token.Ident, token.NotIn, token.Ident, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
}

func TestNotEqualStitching(t *testing.T) {
	lx, _, _ := newTestLexer(t, "a not= b")
	kinds := collectKinds(lx)
	want := []token.Kind{token.Ident, token.NotEqu, token.Ident, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
}

func TestTildeEqualsIsSingleToken(t *testing.T) {
	lx, _, _ := newTestLexer(t, "a~=b")
	kinds := collectKinds(lx)
	want := []token.Kind{token.Ident, token.NotEqu, token.Ident, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
}

func TestLineAndBlockComments(t *testing.T) {
	lx, rep, _ := newTestLexer(t, "% comment\nvar /* nested /* block */ comment */ x")
	tok := lx.Next()
	if tok.Kind != token.KwVar {
		t.Fatalf("got %v, want KwVar", tok.Kind)
	}
	if len(tok.LeadingTrivia) == 0 {
		t.Fatalf("expected leading trivia to be attached")
	}
	tok = lx.Next()
	if tok.Kind != token.Ident {
		t.Fatalf("got %v, want Ident", tok.Kind)
	}
	if rep.hasErrors() {
		t.Fatalf("unexpected errors: %v", rep.diagnostics)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	lx, rep, in := newTestLexer(t, "Москва")
	tok := lx.Next()
	if tok.Kind != token.Ident {
		t.Fatalf("got %v, want Ident", tok.Kind)
	}
	if in.MustLookup(tok.Name) != "Москва" {
		t.Fatalf("got %q", in.MustLookup(tok.Name))
	}
	if rep.hasErrors() {
		t.Fatalf("unexpected errors: %v", rep.diagnostics)
	}
}
