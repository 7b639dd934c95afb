package parser

import (
	"testing"

	"turingc/internal/cst"
	"turingc/internal/diag"
	"turingc/internal/source"
	"turingc/internal/token"
)

func parseSource(t *testing.T, input string) (*cst.Node, *diag.Bag) {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*cst.Node, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.Add("test.t", []byte(input))
	file := fs.Get(fileID)
	in := source.NewInterner()

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	result := ParseFile(file, in, opts)
	return result.Root, result.Bag
}

func childKinds(n *cst.Node) []cst.Kind {
	var out []cst.Kind
	for _, c := range n.ChildNodes() {
		out = append(out, c.Kind)
	}
	return out
}

func firstStmt(t *testing.T, root *cst.Node) *cst.Node {
	t.Helper()
	kids := root.ChildNodes()
	if len(kids) == 0 {
		t.Fatal("expected at least one top-level statement")
	}
	return kids[0]
}

func TestVarDeclWithTypeAndInitializer(t *testing.T) {
	root, bag := parseSource(t, "var x : int := 5\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	decl := firstStmt(t, root)
	if decl.Kind != cst.VarDecl {
		t.Fatalf("expected VarDecl, got %v", decl.Kind)
	}
	kinds := childKinds(decl)
	if len(kinds) != 3 || kinds[0] != cst.NameList || kinds[1] != cst.PrimitiveType || kinds[2] != cst.LiteralExpr {
		t.Fatalf("unexpected VarDecl children: %v", kinds)
	}
}

func TestConstDeclWithoutInitializerIsRejected(t *testing.T) {
	_, bag := parseSource(t, "const x : int\n")
	if !bag.HasErrors() {
		t.Fatal("expected an error for a const with no initializer")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynConstNoInit {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynConstNoInit, got %+v", bag.Items())
	}
}

func TestEqualsRewrittenToAssignWithWarning(t *testing.T) {
	root, bag := parseSource(t, "var x : int = 5\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if !bag.HasWarnings() {
		t.Fatal("expected a warning for '=' used in place of ':='")
	}
	decl := firstStmt(t, root)
	kinds := childKinds(decl)
	if len(kinds) != 3 || kinds[2] != cst.LiteralExpr {
		t.Fatalf("initializer still expected to parse despite the rewrite: %v", kinds)
	}
}

func TestNameListMultipleNames(t *testing.T) {
	root, bag := parseSource(t, "var a, b, c : int\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	decl := firstStmt(t, root)
	names := decl.ChildNodes()[0]
	if names.Kind != cst.NameList {
		t.Fatalf("expected NameList, got %v", names.Kind)
	}
	identCount := 0
	for _, tok := range names.Tokens() {
		if tok.Kind == token.Ident {
			identCount++
		}
	}
	if identCount != 3 {
		t.Fatalf("expected 3 names, got %d (tokens: %v)", identCount, names.Tokens())
	}
}

// TestBinaryPrecedenceClimbsCorrectly checks that "1 + 2 * 3" groups as
// "1 + (2 * 3)" (product binds tighter than sum) by walking the resulting
// tree shape rather than comparing source spans.
func TestBinaryPrecedenceClimbsCorrectly(t *testing.T) {
	root, bag := parseSource(t, "x := 1 + 2 * 3\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	assign := firstStmt(t, root)
	if assign.Kind != cst.AssignStmt {
		t.Fatalf("expected AssignStmt, got %v", assign.Kind)
	}
	rhs := assign.ChildNodes()[len(assign.ChildNodes())-1]
	if rhs.Kind != cst.BinaryExpr {
		t.Fatalf("expected top-level BinaryExpr, got %v", rhs.Kind)
	}
	toks := rhs.Tokens()
	if len(toks) != 1 || toks[0].Kind != token.Plus {
		t.Fatalf("expected '+' at the top of the tree, got %v", toks)
	}
	rightOperand := rhs.ChildNodes()[len(rhs.ChildNodes())-1]
	if rightOperand.Kind != cst.BinaryExpr {
		t.Fatalf("expected '2 * 3' to nest under '+', got %v", rightOperand.Kind)
	}
	if innerToks := rightOperand.Tokens(); len(innerToks) != 1 || innerToks[0].Kind != token.Star {
		t.Fatalf("expected '*' in the nested node, got %v", innerToks)
	}
}

// TestExponentIsRightAssociative checks "2 ** 3 ** 2" groups as
// "2 ** (3 ** 2)", the spec's explicit deviation from left-associative
// exponentiation.
func TestExponentIsRightAssociative(t *testing.T) {
	root, bag := parseSource(t, "x := 2 ** 3 ** 2\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	assign := firstStmt(t, root)
	rhs := assign.ChildNodes()[len(assign.ChildNodes())-1]
	if rhs.Kind != cst.BinaryExpr {
		t.Fatalf("expected BinaryExpr, got %v", rhs.Kind)
	}
	// Left-associative grouping would nest the BinaryExpr on the left
	// operand instead; right-associative grouping nests it on the right.
	left := rhs.ChildNodes()[0]
	right := rhs.ChildNodes()[len(rhs.ChildNodes())-1]
	if left.Kind == cst.BinaryExpr {
		t.Fatal("exponentiation parsed left-associatively, expected right-associative")
	}
	if right.Kind != cst.BinaryExpr {
		t.Fatalf("expected the right operand to hold the nested '**', got %v", right.Kind)
	}
}

func TestPrefixCaretIsFollowExpr(t *testing.T) {
	root, bag := parseSource(t, "x := ^p\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	assign := firstStmt(t, root)
	rhs := assign.ChildNodes()[len(assign.ChildNodes())-1]
	if rhs.Kind != cst.FollowExpr {
		t.Fatalf("expected prefix '^' to parse as FollowExpr, got %v", rhs.Kind)
	}
}

func TestPostfixCaretIsAlsoFollowExpr(t *testing.T) {
	root, bag := parseSource(t, "x := p^\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	assign := firstStmt(t, root)
	rhs := assign.ChildNodes()[len(assign.ChildNodes())-1]
	if rhs.Kind != cst.FollowExpr {
		t.Fatalf("expected postfix '^' to parse as FollowExpr, got %v", rhs.Kind)
	}
	if toks := rhs.Tokens(); len(toks) != 1 || toks[0].Kind != token.Caret {
		t.Fatalf("expected a single trailing '^' leaf, got %v", toks)
	}
}

func TestCompoundAssignment(t *testing.T) {
	root, bag := parseSource(t, "x += 1\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	assign := firstStmt(t, root)
	if assign.Kind != cst.AssignStmt {
		t.Fatalf("expected AssignStmt, got %v", assign.Kind)
	}
	opNode := assign.ChildNodes()[1]
	toks := opNode.Tokens()
	if len(toks) != 2 || toks[0].Kind != token.Plus || toks[1].Kind != token.Equ {
		t.Fatalf("expected the operator node to carry [Plus, Equ], got %v", toks)
	}
}

func TestBareReferenceIsAProcCallStmt(t *testing.T) {
	root, bag := parseSource(t, "doSomething\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	stmt := firstStmt(t, root)
	if stmt.Kind != cst.ProcCallStmt {
		t.Fatalf("expected ProcCallStmt, got %v", stmt.Kind)
	}
}

func TestIfStmtWithElsifAndElse(t *testing.T) {
	src := "if a then\n  x := 1\nelsif b then\n  x := 2\nelse\n  x := 3\nend if\n"
	root, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	ifStmt := firstStmt(t, root)
	if ifStmt.Kind != cst.IfStmt {
		t.Fatalf("expected IfStmt, got %v", ifStmt.Kind)
	}
	kinds := childKinds(ifStmt)
	sawElsif, sawElse := false, false
	for _, k := range kinds {
		switch k {
		case cst.ElsifClause:
			sawElsif = true
		case cst.ElseClause:
			sawElse = true
		}
	}
	if !sawElsif || !sawElse {
		t.Fatalf("expected both an elsif and an else clause, got %v", kinds)
	}
}

func TestLoopStmtAcceptsEndloopShortForm(t *testing.T) {
	root, bag := parseSource(t, "loop\n  exit when done\nendloop\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	loop := firstStmt(t, root)
	if loop.Kind != cst.LoopStmt {
		t.Fatalf("expected LoopStmt, got %v", loop.Kind)
	}
	exit := loop.ChildNodes()[0]
	if exit.Kind != cst.ExitStmt {
		t.Fatalf("expected ExitStmt inside loop body, got %v", exit.Kind)
	}
	if len(exit.ChildNodes()) != 1 {
		t.Fatalf("expected the 'when' condition to be attached, got %v", exit.ChildNodes())
	}
}

func TestForStmtWithRangeAndStep(t *testing.T) {
	root, bag := parseSource(t, "for i : 1 .. 10 by 2\n  put i\nend for\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	forStmt := firstStmt(t, root)
	if forStmt.Kind != cst.ForStmt {
		t.Fatalf("expected ForStmt, got %v", forStmt.Kind)
	}
	kinds := childKinds(forStmt)
	if len(kinds) < 2 || kinds[0] != cst.RangeType {
		t.Fatalf("expected a RangeType bound first, got %v", kinds)
	}
}

func TestCaseStmtWithMultipleLabelsPerArm(t *testing.T) {
	src := "case n of\nlabel 1, 2 :\n  put 1\nlabel 3 :\n  put 2\nend case\n"
	root, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	caseStmt := firstStmt(t, root)
	if caseStmt.Kind != cst.CaseStmt {
		t.Fatalf("expected CaseStmt, got %v", caseStmt.Kind)
	}
	arms := 0
	for _, k := range childKinds(caseStmt) {
		if k == cst.CaseArm {
			arms++
		}
	}
	if arms != 2 {
		t.Fatalf("expected 2 case arms, got %d", arms)
	}
}

func TestSubprogramDeclWithParamsAndResult(t *testing.T) {
	src := "function add (a : int, b : int) : int\n  result a + b\nend add\n"
	root, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	fn := firstStmt(t, root)
	if fn.Kind != cst.FuncDecl {
		t.Fatalf("expected FuncDecl, got %v", fn.Kind)
	}
	kinds := childKinds(fn)
	if len(kinds) < 3 || kinds[0] != cst.ParamList || kinds[1] != cst.PrimitiveType {
		t.Fatalf("expected [ParamList, PrimitiveType, ...body], got %v", kinds)
	}
	params := fn.ChildNodes()[0]
	paramCount := 0
	for _, k := range childKinds(params) {
		if k == cst.Param {
			paramCount++
		}
	}
	if paramCount != 2 {
		t.Fatalf("expected 2 parameters, got %d", paramCount)
	}
}

func TestProcedureDeclWithoutResultType(t *testing.T) {
	src := "procedure greet (name : string)\n  put name\nend greet\n"
	root, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	proc := firstStmt(t, root)
	if proc.Kind != cst.ProcDecl {
		t.Fatalf("expected ProcDecl, got %v", proc.Kind)
	}
}

func TestArrayTypeWithMultipleRanges(t *testing.T) {
	root, bag := parseSource(t, "var m : array 1..3, 1..3 of int\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	decl := firstStmt(t, root)
	arr := decl.ChildNodes()[1]
	if arr.Kind != cst.ArrayType {
		t.Fatalf("expected ArrayType, got %v", arr.Kind)
	}
	ranges := arr.ChildNodes()[0]
	rangeCount := 0
	for _, k := range childKinds(ranges) {
		if k == cst.RangeType {
			rangeCount++
		}
	}
	if rangeCount != 2 {
		t.Fatalf("expected 2 ranges, got %d", rangeCount)
	}
}

func TestPointerToForwardType(t *testing.T) {
	src := "type Node : forward\ntype P : pointer to Node\n"
	root, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	kids := root.ChildNodes()
	if len(kids) != 2 {
		t.Fatalf("expected 2 top-level type declarations, got %d", len(kids))
	}
	forward := kids[0]
	if len(forward.ChildNodes()) != 0 {
		t.Fatalf("expected a forward declaration to have no declared-type child, got %v", childKinds(forward))
	}
	ptrDecl := kids[1]
	ptr := ptrDecl.ChildNodes()[0]
	if ptr.Kind != cst.PointerType {
		t.Fatalf("expected PointerType, got %v", ptr.Kind)
	}
}

// TestUnexpectedTokenRecoversToNextStatement checks that a syntax error on
// one statement does not swallow the one that follows it (spec section
// 4.3's recovery rule: stop skipping at the next statement-starting
// token).
func TestUnexpectedTokenRecoversToNextStatement(t *testing.T) {
	src := ") ) )\nvar x : int := 1\n"
	root, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatal("expected a syntax error on the stray ')' tokens")
	}
	kids := root.ChildNodes()
	found := false
	for _, k := range kids {
		if k.Kind == cst.VarDecl {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected recovery to still parse the var declaration, got %v", childKinds(root))
	}
}

func TestExpressionDepthLimitReportsAndStops(t *testing.T) {
	src := "x := " + repeatPrefix("-", 10) + "1\n"
	_, bag := parseSourceWithOptions(t, src, Options{MaxExprDepth: 5})
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynDepthExceeded {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynDepthExceeded once nesting exceeds the configured limit, got %+v", bag.Items())
	}
}

func repeatPrefix(op string, n int) string {
	var out string
	for i := 0; i < n; i++ {
		out += op + " "
	}
	return out
}
