package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewgen/internal/record"
	"viewgen/internal/resolve"
)

func ann(raw string) record.Annotation {
	return record.Annotation{Raw: raw}
}

func resolveDef(t *testing.T, def *record.Definition) *resolve.Result {
	t.Helper()

	res, err := resolve.Resolve(def)
	require.NoError(t, err)

	return res
}

func pointResult(t *testing.T) *resolve.Result {
	t.Helper()

	return resolveDef(t, &record.Definition{
		Name:        "Point",
		Visibility:  "pub",
		Annotations: []record.Annotation{ann("view_as(ReadView, WriteView)")},
		Fields: []record.Field{
			{Name: "x", Visibility: "pub", Type: "i32", Annotations: []record.Annotation{ann("ref_in(ReadView)")}},
			{Name: "y", Visibility: "pub", Type: "i32", Annotations: []record.Annotation{ann("mut_in(WriteView)")}},
		},
	})
}

func TestGenerate_PointViews(t *testing.T) {
	gen := NewGenerator(DefaultConfig())

	files, err := gen.Generate([]*resolve.Result{pointResult(t)})

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "point_views.rs", files[0].Filename)

	content := string(files[0].Content)

	// View types: shared field bound to the shared scope, exclusive field
	// bound to the exclusive scope, neither view containing the other's field.
	assert.Contains(t, content, "pub struct ReadView<'__ref__, '__mut__>")
	assert.Contains(t, content, "pub x: &'__ref__ i32,")
	assert.Contains(t, content, "pub struct WriteView<'__ref__, '__mut__>")
	assert.Contains(t, content, "pub y: &'__mut__ mut i32,")

	readStruct := content[strings.Index(content, "struct ReadView"):strings.Index(content, "impl<'__ref__, '__mut__> ReadView")]
	assert.NotContains(t, readStruct, "y:")

	// Marker member ties both scopes to the type.
	assert.Contains(t, content, "_marker: ::core::marker::PhantomData<(&'__ref__ (), &'__mut__ mut ())>,")

	// Narrowing keeps the shared scope and swaps in the inner scope.
	assert.Contains(t, content,
		"pub fn reborrow<'__brw__>(&'__brw__ mut self) -> ReadView<'__ref__, '__brw__>")
	assert.Contains(t, content, "x: &self.x,")
	assert.Contains(t, content, "y: &mut self.y,")

	// Constructor templates borrow straight off the owner expression.
	assert.Contains(t, content, "macro_rules! ReadView_ctor")
	assert.Contains(t, content, "x: &$e.x,")
	assert.Contains(t, content, "macro_rules! WriteView_ctor")
	assert.Contains(t, content, "y: &mut $e.y,")
}

func TestGenerate_HeaderToggle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Header = false
	gen := NewGenerator(cfg)

	files, err := gen.Generate([]*resolve.Result{pointResult(t)})

	require.NoError(t, err)
	assert.NotContains(t, string(files[0].Content), "DO NOT EDIT")

	gen = NewGenerator(DefaultConfig())
	files, err = gen.Generate([]*resolve.Result{pointResult(t)})

	require.NoError(t, err)
	assert.Contains(t, string(files[0].Content), "// Code generated by viewgen. DO NOT EDIT.")
}

func TestGenerate_EmptyView(t *testing.T) {
	res := resolveDef(t, &record.Definition{
		Name:        "Config",
		Annotations: []record.Annotation{ann("view_as(Empty)")},
		Fields:      []record.Field{{Name: "value", Type: "u64"}},
	})

	gen := NewGenerator(DefaultConfig())
	files, err := gen.Generate([]*resolve.Result{res})

	require.NoError(t, err)

	content := string(files[0].Content)

	// Still a valid, instantiable type: scope parameters held by the marker.
	assert.Contains(t, content, "struct Empty<'__ref__, '__mut__>")
	assert.Contains(t, content, "_marker: ::core::marker::PhantomData<(&'__ref__ (), &'__mut__ mut ())>,")
	assert.Contains(t, content, "macro_rules! Empty_ctor")
	assert.NotContains(t, content, "value:")
}

func TestGenerate_GenericsAndConstraints(t *testing.T) {
	res := resolveDef(t, &record.Definition{
		Name:       "Container",
		Visibility: "pub",
		GenericParams: []record.GenericParam{
			{Kind: record.ParamLifetime, Name: "'a"},
			{Kind: record.ParamType, Name: "T", Bounds: "Clone + Default"},
			{Kind: record.ParamConst, Name: "N", Bounds: "usize"},
		},
		WhereClause: "T: Send",
		Annotations: []record.Annotation{ann("view_as(ItemsView)")},
		Fields: []record.Field{
			{Name: "items", Type: "Vec<T>", Annotations: []record.Annotation{ann("mut_in(ItemsView)")}},
		},
	})

	gen := NewGenerator(DefaultConfig())
	files, err := gen.Generate([]*resolve.Result{res})

	require.NoError(t, err)

	content := string(files[0].Content)

	// Declaration positions carry names only; bounds all move to the
	// constraint clause. Const parameters keep their value type.
	assert.Contains(t, content, "pub struct ItemsView<'__ref__, '__mut__, 'a, T, const N: usize>")
	assert.Contains(t, content, "where T: Clone + Default, T: Send")
	assert.NotContains(t, content, "T: Clone + Default>")

	// Reference positions use bare names everywhere.
	assert.Contains(t, content, "ItemsView<'__ref__, '__mut__, 'a, T, N>")
	assert.Contains(t, content,
		"pub fn reborrow<'__brw__>(&'__brw__ mut self) -> ItemsView<'__ref__, '__brw__, 'a, T, N>")

	assert.Contains(t, content, "items: &'__mut__ mut Vec<T>,")
}

func TestGenerate_DeterministicOrder(t *testing.T) {
	gen := NewGenerator(DefaultConfig())

	first, err := gen.Generate([]*resolve.Result{pointResult(t)})
	require.NoError(t, err)

	second, err := gen.Generate([]*resolve.Result{pointResult(t)})
	require.NoError(t, err)

	assert.Equal(t, first[0].Content, second[0].Content)

	// Views appear in declaration order.
	content := string(first[0].Content)
	assert.Less(t,
		strings.Index(content, "struct ReadView"),
		strings.Index(content, "struct WriteView"))
}

func TestExpandCtor_DiffersOnlyInOwner(t *testing.T) {
	res := pointResult(t)
	read := res.Views[0]

	a := ExpandCtor(read, "owner")
	b := ExpandCtor(read, "other.nested")

	assert.Contains(t, a, "x: &owner.x,")
	assert.Contains(t, b, "x: &other.nested.x,")

	// Substituting the owner expression back out yields identical artifacts.
	normA := strings.ReplaceAll(a, "owner", "$e")
	normB := strings.ReplaceAll(b, "other.nested", "$e")
	assert.Equal(t, normA, normB)
}

func TestGenerate_MultipleRecords(t *testing.T) {
	point := pointResult(t)
	other := resolveDef(t, &record.Definition{
		Name:        "Session",
		Annotations: []record.Annotation{ann("view_as(TokenView)")},
		Fields: []record.Field{
			{Name: "token", Type: "String", Annotations: []record.Annotation{ann("ref_in(TokenView)")}},
		},
	})

	gen := NewGenerator(DefaultConfig())
	files, err := gen.Generate([]*resolve.Result{point, other})

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "point_views.rs", files[0].Filename)
	assert.Equal(t, "session_views.rs", files[1].Filename)
}
