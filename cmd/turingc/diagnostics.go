package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"turingc/internal/diag"
	"turingc/internal/source"
)

// renderDiagnostics prints bag's items in `path:line:col: severity code: message`
// form, one line per diagnostic, colorized by severity when useColor is set.
// bag.Sort() must already have been called so diagnostics come out in span
// order, matching the teacher's own sorted-bag-then-render convention.
func renderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, useColor bool) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan, color.Bold)
	noteColor := color.New(color.FgWhite)

	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !useColor

	for _, d := range bag.Items() {
		sevColor := noteColor
		switch d.Severity {
		case diag.SevError:
			sevColor = errorColor
		case diag.SevWarning:
			sevColor = warningColor
		case diag.SevInfo:
			sevColor = infoColor
		}

		file := fs.Get(d.Primary.File)
		lc := fs.Resolve(d.Primary.File, d.Primary.Start)
		fmt.Fprintf(w, "%s:%d:%d: %s %s\n",
			file.Path, lc.Line, lc.Col,
			sevColor.Sprint(d.Severity.String()),
			sevColor.Sprintf("T%04d: %s", uint16(d.Code), d.Message))

		for _, n := range d.Notes {
			nlc := fs.Resolve(n.Span.File, n.Span.Start)
			fmt.Fprintf(w, "  %s:%d:%d: note: %s\n", file.Path, nlc.Line, nlc.Col, n.Msg)
		}
		for _, f := range d.Footers {
			fmt.Fprintf(w, "  %s\n", f.Msg)
		}
	}
}
