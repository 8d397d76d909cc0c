package resolve

import (
	"errors"
	"fmt"

	"viewgen/internal/attr"
	"viewgen/internal/diag"
	"viewgen/internal/match"
	"viewgen/internal/record"
)

// ViewField is one member field of a resolved view. Visibility and Type
// echo the original field verbatim; only the access mode is the view's own.
type ViewField struct {
	Name       string
	Visibility record.Visibility
	Mode       AccessMode
	Type       string
}

// View is one resolved view: the ordered set of member fields it exposes.
// Fields appear in record declaration order. A view declared at the record
// level but referenced by no field is legal and stays empty.
type View struct {
	Name   string
	Fields []ViewField

	index map[string]int
}

func newView(name string) *View {
	return &View{Name: name, index: make(map[string]int)}
}

// Field returns the member with the given name, or false.
func (v *View) Field(name string) (ViewField, bool) {
	i, ok := v.index[name]
	if !ok {
		return ViewField{}, false
	}

	return v.Fields[i], ok
}

// insert adds a membership, accumulating per (field, view) first so a
// second insertion under a different mode fails instead of silently
// overwriting. Re-asserting the same mode is harmless.
func (v *View) insert(f *record.Field, mode AccessMode) error {
	if i, ok := v.index[f.Name]; ok {
		if v.Fields[i].Mode != mode {
			return &ConflictError{Field: f.Name, View: v.Name, Span: f.Span}
		}

		return nil
	}

	v.index[f.Name] = len(v.Fields)
	v.Fields = append(v.Fields, ViewField{
		Name:       f.Name,
		Visibility: f.Visibility,
		Mode:       mode,
		Type:       f.Type,
	})

	return nil
}

// Result holds every resolved view of one record, in first-seen
// declaration order, plus non-fatal diagnostics collected along the way.
type Result struct {
	Record   *record.Definition
	Views    []*View
	Warnings diag.Diagnostics
}

// ViewNames returns the declared view names in declaration order.
func (r *Result) ViewNames() []string {
	names := make([]string, len(r.Views))
	for i, v := range r.Views {
		names[i] = v.Name
	}

	return names
}

// Resolve builds the per-view field tables for one record definition.
//
// All errors are detected here, eagerly, so emission never fails on a
// resolved result: unsupported shapes, malformed annotation payloads and
// dual-mode membership conflicts all abort the pass before any output
// exists.
func Resolve(def *record.Definition) (*Result, error) {
	if def.Shape != record.ShapeStruct {
		return nil, &UnsupportedShapeError{Record: def.Name, Shape: def.Shape, Span: def.Span}
	}

	declared, err := attr.Collect(def.Annotations, attr.KeyViewAs)
	if err != nil {
		return nil, err
	}

	res := &Result{Record: def}

	// First-seen declaration order; duplicates across view_as annotations
	// collapse under set semantics.
	index := make(map[string]*View)

	for _, ident := range declared {
		if _, ok := index[ident.Name]; ok {
			continue
		}

		v := newView(ident.Name)
		index[ident.Name] = v
		res.Views = append(res.Views, v)
	}

	for i := range def.Fields {
		f := &def.Fields[i]

		if err := res.collectMemberships(f, attr.KeyRefIn, Shared, index); err != nil {
			return nil, err
		}

		if err := res.collectMemberships(f, attr.KeyMutIn, Exclusive, index); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// collectMemberships inserts one field into every view its annotations of
// the given key reference. Memberships naming an undeclared view yield a
// warning, not an error, with a closest-name suggestion when one exists.
func (r *Result) collectMemberships(
	f *record.Field,
	key string,
	mode AccessMode,
	index map[string]*View,
) error {
	idents, err := attr.Collect(f.Annotations, key)
	if err != nil {
		return err
	}

	for _, ident := range idents {
		v, ok := index[ident.Name]
		if !ok {
			r.warnUnknownView(f, ident)
			continue
		}

		if err := v.insert(f, mode); err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				conflict.Record = r.Record.Name
			}

			return err
		}
	}

	return nil
}

func (r *Result) warnUnknownView(f *record.Field, ident attr.Ident) {
	msg := fmt.Sprintf("field %s references undeclared view %s", f.Name, ident.Name)

	var suggestions []string
	if closest, ok := match.Closest(ident.Name, r.ViewNames(), match.DefaultSuggestionScore); ok {
		suggestions = append(suggestions, "did you mean "+closest+"?")
	}

	r.Warnings.AddWarning("unknown-view", msg, ident.Span, suggestions...)
}
