package lexer

import (
	"turingc/internal/diag"
	"turingc/internal/source"
)

// Options configures a Lexer's error reporting and dialect-independent
// feature gates.
type Options struct {
	Reporter diag.Reporter
	// Allow64BitOps carries the allow_64bit_ops project setting. Scanning
	// does not consult it: integer literals are always range-checked
	// against u64, and the 32/64-bit width is applied by constant
	// evaluation.
	Allow64BitOps bool
}

func (lx *Lexer) reportLex(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.reportLex(code, diag.SevError, sp, msg)
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	lx.reportLex(code, diag.SevWarning, sp, msg)
}
