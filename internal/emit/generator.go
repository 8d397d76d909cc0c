package emit

import (
	"bytes"
	"fmt"
	"strings"

	"viewgen/internal/record"
	"viewgen/internal/resolve"
)

// Config holds configuration for code generation.
type Config struct {
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// FileSuffix is appended to the lowercased record name.
	FileSuffix string
	// Header enables the generated-code header comment.
	Header bool
}

// DefaultConfig returns the default emitter configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir:  "./generated",
		FileSuffix: "_views.rs",
		Header:     true,
	}
}

// GeneratedFile represents one generated source file.
type GeneratedFile struct {
	// Filename is the bare file name (e.g. "point_views.rs").
	Filename string
	// Content is the rendered source text.
	Content []byte
}

// Generator renders resolved views into generated files.
type Generator struct {
	config Config
}

// NewGenerator creates a Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

// Generate renders one file per resolved record. Emission cannot fail on
// input that passed resolution; an error here means a template bug.
func (g *Generator) Generate(results []*resolve.Result) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, res := range results {
		file, err := g.generateRecord(res)
		if err != nil {
			return nil, fmt.Errorf("generating views for %s: %w", res.Record.Name, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generateRecord(res *resolve.Result) (*GeneratedFile, error) {
	data := fileData{
		Header: g.config.Header,
		Source: res.Record.Span.File,
	}

	for _, v := range res.Views {
		data.Views = append(data.Views, buildViewData(res.Record, v))
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, &data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return &GeneratedFile{
		Filename: g.filename(res.Record),
		Content:  buf.Bytes(),
	}, nil
}

func (g *Generator) filename(def *record.Definition) string {
	return strings.ToLower(def.Name) + g.config.FileSuffix
}

// fileData is the root template payload for one record.
type fileData struct {
	Header bool
	Source string
	Views  []viewData
}

// viewData carries one view through the struct, impl and ctor templates.
type viewData struct {
	Vis  string
	Name string
	// GenericsIntro lists the record's generic parameters for parameter
	// list positions, bounds elided.
	GenericsIntro string
	// GenericsRef lists the bare parameter names for type references.
	GenericsRef string
	// Where is the full constraint clause: the parameters' bounds plus the
	// record's own where clause.
	Where  string
	Fields []fieldData
}

type fieldData struct {
	Vis  string
	Name string
	// Decl is the field's type in the view: a reference bound to the
	// shared or exclusive scope.
	Decl string
	// SelfRef re-borrows the field off self, for the reborrow method.
	SelfRef string
	// OwnerRef borrows the field off the ctor's owner expression.
	OwnerRef string
}

// buildViewData flattens one resolved view for the templates. Fields keep
// record order; the view's own order is already first-seen.
func buildViewData(def *record.Definition, v *resolve.View) viewData {
	data := viewData{
		Vis:           def.Visibility.Prefix(),
		Name:          v.Name,
		GenericsIntro: genericsIntro(def.GenericParams),
		GenericsRef:   genericsRef(def.GenericParams),
		Where:         whereClause(def),
	}

	for _, f := range v.Fields {
		data.Fields = append(data.Fields, fieldData{
			Vis:      f.Visibility.Prefix(),
			Name:     f.Name,
			Decl:     fieldDecl(f),
			SelfRef:  borrowExpr(f.Mode, "self", f.Name),
			OwnerRef: borrowExpr(f.Mode, "$e", f.Name),
		})
	}

	return data
}

func fieldDecl(f resolve.ViewField) string {
	if f.Mode == resolve.Exclusive {
		return "&" + exclusiveScope + " mut " + f.Type
	}

	return "&" + sharedScope + " " + f.Type
}

func borrowExpr(mode resolve.AccessMode, owner, field string) string {
	if mode == resolve.Exclusive {
		return "&mut " + owner + "." + field
	}

	return "&" + owner + "." + field
}

func genericsIntro(params []record.GenericParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Intro())
	}

	return strings.Join(parts, ", ")
}

func genericsRef(params []record.GenericParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Ref())
	}

	return strings.Join(parts, ", ")
}

// whereClause combines the bounds stripped off the generic parameters with
// the record's declared where clause into one constraint clause.
func whereClause(def *record.Definition) string {
	var parts []string

	for _, p := range def.GenericParams {
		if c := p.Constraint(); c != "" {
			parts = append(parts, c)
		}
	}

	if def.WhereClause != "" {
		parts = append(parts, def.WhereClause)
	}

	if len(parts) == 0 {
		return ""
	}

	return "where " + strings.Join(parts, ", ")
}

// ExpandCtor expands a view's constructor template against a concrete
// owner expression, producing the literal the emitted macro would expand
// to. Two expansions of the same view differ only in the owner expression.
func ExpandCtor(v *resolve.View, owner string) string {
	var sb strings.Builder

	sb.WriteString(v.Name + " {\n")

	for _, f := range v.Fields {
		sb.WriteString("    " + f.Name + ": " + borrowExpr(f.Mode, owner, f.Name) + ",\n")
	}

	sb.WriteString("    _marker: ::core::marker::PhantomData,\n}")

	return sb.String()
}
