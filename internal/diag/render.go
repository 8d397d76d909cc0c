package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	spanColor    = color.New(color.Bold)
)

// Fprint writes a single diagnostic to w, colorized when w is a terminal
// (the color package disables itself otherwise).
func Fprint(w io.Writer, d Diagnostic) {
	var sb strings.Builder

	if !d.Span.IsZero() || d.Span.File != "" {
		sb.WriteString(spanColor.Sprint(d.Span.String()))
		sb.WriteString(": ")
	}

	label := d.Severity.String()
	if d.Code != "" {
		label += "[" + d.Code + "]"
	}

	switch d.Severity {
	case SeverityError:
		sb.WriteString(errorColor.Sprint(label))
	case SeverityWarning:
		sb.WriteString(warningColor.Sprint(label))
	default:
		sb.WriteString(infoColor.Sprint(label))
	}

	sb.WriteString(": ")
	sb.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(d.Suggestions, "; "))
		sb.WriteString(")")
	}

	fmt.Fprintln(w, sb.String())
}

// FprintAll writes every collected diagnostic to w, errors first.
func FprintAll(w io.Writer, ds *Diagnostics) {
	for _, d := range ds.All() {
		Fprint(w, d)
	}
}
