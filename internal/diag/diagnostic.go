package diag

import "turingc/internal/source"

// Note is a secondary annotation attached to a diagnostic, e.g.
// "reference declared here".
type Note struct {
	Kind  Severity
	Span  source.Span
	Msg   string
}

// Footer is a trailing, span-less remark on a diagnostic.
type Footer struct {
	Kind Severity
	Msg  string
}

// Diagnostic is one emitted message, matching the external protocol in
// spec.md section 6: kind/message/primary span/annotations/footer.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Footers  []Footer
}
