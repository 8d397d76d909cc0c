package record

import "fmt"

// Span points at a location in a definition file. Line and Column are
// 1-based, as reported by the YAML decoder.
type Span struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the span carries no position information.
func (s Span) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// String returns "file:line:column", omitting the file part when unset.
func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}

	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}
