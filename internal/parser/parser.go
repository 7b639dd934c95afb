// Package parser implements the Turing recursive-descent/Pratt parser: it
// consumes a token stream from internal/lexer and builds a lossless
// internal/cst tree, recovering from syntax errors without losing forward
// progress (spec section 4.3's Parser).
package parser

import (
	"turingc/internal/cst"
	"turingc/internal/diag"
	"turingc/internal/lexer"
	"turingc/internal/source"
	"turingc/internal/token"
)

const (
	defaultMaxExprDepth = 256
	defaultMaxStmtDepth = 256
	defaultMaxTypeDepth = 256
)

// Options configures a parse run.
type Options struct {
	Reporter diag.Reporter
	// MaxErrors bounds how many diagnostics the parser itself will emit
	// (independent of any cap the Reporter's own Bag enforces).
	MaxErrors int

	MaxExprDepth int
	MaxStmtDepth int
	MaxTypeDepth int

	Allow64BitOps bool
}

func (o Options) maxExprDepth() int {
	if o.MaxExprDepth <= 0 {
		return defaultMaxExprDepth
	}
	return o.MaxExprDepth
}

func (o Options) maxStmtDepth() int {
	if o.MaxStmtDepth <= 0 {
		return defaultMaxStmtDepth
	}
	return o.MaxStmtDepth
}

func (o Options) maxTypeDepth() int {
	if o.MaxTypeDepth <= 0 {
		return defaultMaxTypeDepth
	}
	return o.MaxTypeDepth
}

// Result is what ParseFile returns: the parsed tree and the diagnostics
// collected during lexing and parsing.
type Result struct {
	Root *cst.Node
	Bag  *diag.Bag
}

// Parser holds per-file parsing state. It is not safe for concurrent use;
// callers run one Parser per file (units are validated in parallel at a
// higher layer, see internal/sema).
type Parser struct {
	lx   *lexer.Lexer
	b    *cst.Builder
	file source.FileID
	opts Options

	// buf is a lookahead buffer of not-yet-consumed tokens, filled from
	// lx.Next() on demand. The parser needs more than the lexer's own
	// one-token Peek -- compound-assignment detection ("x += 1", spelled
	// as an operator immediately followed by a bare '=') requires seeing
	// two tokens ahead without consuming either.
	buf []token.Token

	lastSpan source.Span
	errCount int

	exprDepth int
	stmtDepth int
	typeDepth int

	// recovery is a stack of extra stop-token sets contributed by the
	// call chain currently parsing (e.g. a parameter list contributes
	// Comma/RParen so an inner error doesn't skip past them).
	recovery [][]token.Kind
}

// ParseFile lexes and parses file's content, producing a SourceFile-rooted
// CST. The same Reporter is shared between the lexer and the parser so
// lexical and syntactic diagnostics interleave in span order once sorted.
func ParseFile(file *source.File, in *source.Interner, opts Options) Result {
	var bag *diag.Bag
	rep := opts.Reporter
	if rep == nil {
		bag = diag.NewBag(opts.MaxErrors)
		rep = diag.NewBagReporter(bag)
	} else if br, ok := rep.(*diag.BagReporter); ok {
		bag = br.Bag
	}

	lx := lexer.New(file, in, lexer.Options{Reporter: rep, Allow64BitOps: opts.Allow64BitOps})
	p := &Parser{
		lx:       lx,
		b:        cst.NewBuilder(),
		file:     file.ID,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	if p.opts.Reporter == nil {
		p.opts.Reporter = rep
	}

	p.b.Start(cst.SourceFile)
	p.parseStmtSeq(topLevelStop)
	if !p.at(token.EOF) {
		p.errorf(diag.SynUnexpectedToken, p.peek().Span, "expected end of file, found %s", p.peek().Kind)
		p.recover()
	}
	root := p.b.Finish()

	return Result{Root: root, Bag: bag}
}

// topLevelStop is the recovery set for the outermost statement sequence:
// nothing closes it except EOF, so it is empty (EOF always halts loops).
var topLevelStop []token.Kind
