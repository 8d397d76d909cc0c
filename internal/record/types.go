package record

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Shape represents the kind of a record declaration.
type Shape int

const (
	ShapeStruct Shape = iota // named-field product type, the only supported shape
	ShapeTuple
	ShapeUnit
	ShapeEnum
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeStruct:
		return "struct"
	case ShapeTuple:
		return "tuple"
	case ShapeUnit:
		return "unit"
	case ShapeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// UnmarshalYAML decodes a shape from its lowercase name. An empty value
// defaults to struct.
func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "", "struct":
		*s = ShapeStruct
	case "tuple":
		*s = ShapeTuple
	case "unit":
		*s = ShapeUnit
	case "enum":
		*s = ShapeEnum
	default:
		return fmt.Errorf("line %d: unknown record shape %q", node.Line, node.Value)
	}

	return nil
}

// Visibility is the declared visibility of a record or field, carried
// verbatim into generated output (e.g. "pub", "pub(crate)", "").
type Visibility string

// Prefix returns the visibility followed by a space, or an empty string
// for private visibility. Convenient in emission templates.
func (v Visibility) Prefix() string {
	if v == "" {
		return ""
	}

	return string(v) + " "
}

// ParamKind distinguishes the three kinds of generic parameters.
type ParamKind int

const (
	ParamType ParamKind = iota // default when the definition omits the kind
	ParamLifetime
	ParamConst
)

// UnmarshalYAML decodes a parameter kind from its lowercase name.
func (k *ParamKind) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "", "type":
		*k = ParamType
	case "lifetime":
		*k = ParamLifetime
	case "const":
		*k = ParamConst
	default:
		return fmt.Errorf("line %d: unknown generic parameter kind %q", node.Line, node.Value)
	}

	return nil
}

// GenericParam is one generic parameter of a record definition, modeled as
// a (name, optional bounds) pair so the emitter can render it twice:
// name-only in declaration positions and bounds-only in the constraint
// clause.
type GenericParam struct {
	Kind   ParamKind `yaml:"kind,omitempty"`
	Name   string    `yaml:"name"`
	Bounds string    `yaml:"bounds,omitempty"`
}

// Intro renders the parameter for generic-parameter-list positions with
// its bounds elided. Const parameters keep their value type (held in
// Bounds), which is part of the declaration rather than a constraint.
func (p GenericParam) Intro() string {
	if p.Kind == ParamConst {
		return "const " + p.Name + ": " + p.Bounds
	}

	return p.Name
}

// Ref renders the parameter for type-reference positions: the bare name.
func (p GenericParam) Ref() string {
	return p.Name
}

// Constraint renders the parameter's bounds for the constraint clause, or
// an empty string when it has none.
func (p GenericParam) Constraint() string {
	if p.Kind == ParamConst || p.Bounds == "" {
		return ""
	}

	return p.Name + ": " + p.Bounds
}

// Annotation is one raw annotation entry attached to a record or field,
// e.g. "view_as(ReadView, WriteView)". The argument payload stays unparsed
// here; the attr package turns it into identifiers.
type Annotation struct {
	Raw  string
	Span Span
}

// UnmarshalYAML decodes an annotation from a scalar node, capturing the
// node position so diagnostics can point back at it.
func (a *Annotation) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: annotation must be a string", node.Line)
	}

	a.Raw = strings.TrimSpace(node.Value)
	a.Span = Span{Line: node.Line, Column: node.Column}

	return nil
}

// Key returns the annotation name before the argument list.
func (a Annotation) Key() string {
	if i := strings.IndexByte(a.Raw, '('); i >= 0 {
		return strings.TrimSpace(a.Raw[:i])
	}

	return a.Raw
}

// Payload returns the parenthesized argument list, or an empty string when
// the annotation has no arguments.
func (a Annotation) Payload() string {
	if i := strings.IndexByte(a.Raw, '('); i >= 0 {
		return a.Raw[i:]
	}

	return ""
}

// Field is one named field of a record definition.
type Field struct {
	Name        string       `yaml:"name"`
	Visibility  Visibility   `yaml:"visibility,omitempty"`
	Type        string       `yaml:"type"`
	Annotations []Annotation `yaml:"annotations,omitempty"`
	Span        Span         `yaml:"-"`
}

// UnmarshalYAML decodes a field and records its position.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	type plain Field

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*f = Field(p)
	f.Span = Span{Line: node.Line, Column: node.Column}

	return nil
}

// Definition is one annotated record read from a definition file.
type Definition struct {
	Name          string         `yaml:"name"`
	Visibility    Visibility     `yaml:"visibility,omitempty"`
	Shape         Shape          `yaml:"shape,omitempty"`
	GenericParams []GenericParam `yaml:"generics,omitempty"`
	WhereClause   string         `yaml:"where,omitempty"`
	Annotations   []Annotation   `yaml:"annotations,omitempty"`
	Fields        []Field        `yaml:"fields,omitempty"`
	Span          Span           `yaml:"-"`
}

// UnmarshalYAML decodes a definition and records its position.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	type plain Definition

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*d = Definition(p)
	d.Span = Span{Line: node.Line, Column: node.Column}

	return nil
}

// FieldByName returns the field with the given name, or nil.
func (d *Definition) FieldByName(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}

	return nil
}
