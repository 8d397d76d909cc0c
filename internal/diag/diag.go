package diag

import (
	"errors"
	"fmt"
	"strings"

	"viewgen/internal/record"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a short identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Span anchors the diagnostic to the offending source position.
	Span record.Span
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// String returns a formatted diagnostic line:
//
//	defs/point.yaml:7:9: error[view-conflict]: ...
func (d Diagnostic) String() string {
	var sb strings.Builder

	if !d.Span.IsZero() || d.Span.File != "" {
		sb.WriteString(d.Span.String())
		sb.WriteString(": ")
	}

	sb.WriteString(d.Severity.String())

	if d.Code != "" {
		sb.WriteString("[" + d.Code + "]")
	}

	sb.WriteString(": ")
	sb.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(d.Suggestions, "; "))
		sb.WriteString(")")
	}

	return sb.String()
}

// Diagnostics holds all diagnostics collected during a generation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, span record.Span) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Span:     span,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, span record.Span, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Span:        span,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, span record.Span) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Span:     span,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Summary returns a one-line count of collected diagnostics.
func (d *Diagnostics) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s)", len(d.Errors), len(d.Warnings))
}
