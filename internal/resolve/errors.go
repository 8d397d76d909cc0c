package resolve

import (
	"fmt"

	"viewgen/internal/record"
)

// UnsupportedShapeError reports a view_as annotation on a declaration that
// is not a named-field struct. Checked before any view resolution.
type UnsupportedShapeError struct {
	Record string
	Shape  record.Shape
	Span   record.Span
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("%s: view_as can only apply to a named-field struct, but %s is a %s",
		e.Span, e.Record, e.Shape)
}

// ConflictError reports a field annotated both shared and exclusive for
// the same view.
type ConflictError struct {
	Record string
	Field  string
	View   string
	Span   record.Span
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: field %s of %s is annotated both ref_in and mut_in for view %s",
		e.Span, e.Field, e.Record, e.View)
}
