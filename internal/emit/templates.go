package emit

import "text/template"

// Borrow-scope parameter names carried by every generated view type. The
// shared scope stays fixed across reborrows; the exclusive scope is the
// one that narrows.
const (
	sharedScope    = "'__ref__"
	exclusiveScope = "'__mut__"
	narrowScope    = "'__brw__"
)

// fileTemplate renders one generated file: all artifacts of all views of
// one record, in declaration order.
var fileTemplate = template.Must(template.New("views").Parse(`{{if .Header}}// Code generated by viewgen. DO NOT EDIT.
{{if .Source}}// source: {{.Source}}
{{end}}
{{end}}{{range .Views}}{{template "struct" .}}

{{template "impl" .}}

{{template "ctor" .}}

{{end}}`))

// structTemplate renders the view type. Every shared member borrows at the
// shared scope, every exclusive member at the exclusive scope, and the
// inert marker member ties both scopes to the type even when a view has no
// field of one mode.
var structTemplate = template.Must(fileTemplate.New("struct").Parse(`#[allow(non_snake_case)]
{{.Vis}}struct {{.Name}}<` + sharedScope + `, ` + exclusiveScope + `{{if .GenericsIntro}}, {{.GenericsIntro}}{{end}}>
{{if .Where}}{{.Where}}
{{end}}{
{{range .Fields}}    {{.Vis}}{{.Name}}: {{.Decl}},
{{end}}
    #[doc(hidden)]
    _marker: ::core::marker::PhantomData<(&` + sharedScope + ` (), &` + exclusiveScope + ` mut ())>,
}`))

// implTemplate renders the narrowing operation: it consumes an exclusive
// borrow of the view for an ephemeral inner scope and rebuilds the view
// with the shared scope unchanged and the inner scope as the exclusive
// one. This is what lets a caller reuse one view across nested calls
// instead of moving it.
var implTemplate = template.Must(fileTemplate.New("impl").Parse(`impl<` + sharedScope + `, ` + exclusiveScope + `{{if .GenericsIntro}}, {{.GenericsIntro}}{{end}}> {{.Name}}<` + sharedScope + `, ` + exclusiveScope + `{{if .GenericsRef}}, {{.GenericsRef}}{{end}}>
{{if .Where}}{{.Where}}
{{end}}{
    pub fn reborrow<` + narrowScope + `>(&` + narrowScope + ` mut self) -> {{.Name}}<` + sharedScope + `, ` + narrowScope + `{{if .GenericsRef}}, {{.GenericsRef}}{{end}}> {
        {{.Name}} {
{{range .Fields}}            {{.Name}}: {{.SelfRef}},
{{end}}            _marker: ::core::marker::PhantomData,
        }
    }
}`))

// ctorTemplate renders the constructor as an exported expansion template
// rather than a function: the borrow expressions must appear lexically at
// the call site so each field keeps its own independent borrow scope.
var ctorTemplate = template.Must(fileTemplate.New("ctor").Parse(`#[macro_export]
macro_rules! {{.Name}}_ctor {
    ($e: expr) => {
        {{.Name}} {
{{range .Fields}}            {{.Name}}: {{.OwnerRef}},
{{end}}            _marker: ::core::marker::PhantomData,
        }
    };
}`))
