package diag

import "turingc/internal/source"

// Reporter is the narrow interface every phase depends on to emit
// diagnostics, so lexer/parser/sema can be exercised without pulling in
// a concrete Bag (mirrors the teacher's reporter-adapter seam).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, footers []Footer)
}

// BagReporter adapts a Bag to the Reporter interface.
type BagReporter struct {
	Bag *Bag
}

// NewBagReporter wraps bag as a Reporter.
func NewBagReporter(bag *Bag) *BagReporter { return &BagReporter{Bag: bag} }

// Report implements Reporter.
func (r *BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, footers []Footer) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(&Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Footers:  footers,
	})
}

// Error is a convenience for Report with SevError and no notes/footers.
func (r *BagReporter) Error(code Code, span source.Span, msg string) {
	r.Report(code, SevError, span, msg, nil, nil)
}

// Warn is a convenience for Report with SevWarning and no notes/footers.
func (r *BagReporter) Warn(code Code, span source.Span, msg string) {
	r.Report(code, SevWarning, span, msg, nil, nil)
}
