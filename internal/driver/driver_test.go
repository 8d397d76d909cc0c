package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewgen/internal/emit"
)

const pointYAML = `records:
  - name: Point
    visibility: pub
    annotations:
      - view_as(ReadView, WriteView)
    fields:
      - name: x
        visibility: pub
        type: i32
        annotations:
          - ref_in(ReadView)
      - name: y
        visibility: pub
        type: i32
        annotations:
          - mut_in(WriteView)
`

const conflictYAML = `records:
  - name: Broken
    annotations:
      - view_as(V)
    fields:
      - name: f
        type: i32
        annotations:
          - ref_in(V)
          - mut_in(V)
`

func writeDef(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func testOptions(outDir string) Options {
	cfg := emit.DefaultConfig()
	cfg.OutputDir = outDir

	return Options{Emit: cfg}
}

func TestRun_GeneratesFiles(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "generated")
	path := writeDef(t, dir, "point.yaml", pointYAML)

	summary, err := Run(context.Background(), zerolog.Nop(), testOptions(outDir), []string{path})

	require.NoError(t, err)
	assert.False(t, summary.Diagnostics.HasErrors())
	require.Len(t, summary.Files, 1)
	require.Len(t, summary.Files[0].Generated, 1)

	content, err := os.ReadFile(filepath.Join(outDir, "point_views.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "pub struct ReadView<'__ref__, '__mut__>")
	assert.Contains(t, string(content), "macro_rules! WriteView_ctor")
	assert.Contains(t, string(content), "// source: "+path)
}

func TestRun_ConflictAbortsRecordWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "generated")
	path := writeDef(t, dir, "broken.yaml", conflictYAML)

	summary, err := Run(context.Background(), zerolog.Nop(), testOptions(outDir), []string{path})

	require.NoError(t, err)
	assert.True(t, summary.Diagnostics.HasErrors())

	require.Len(t, summary.Diagnostics.Errors, 1)
	d := summary.Diagnostics.Errors[0]
	assert.Equal(t, "view-conflict", d.Code)
	assert.Equal(t, path, d.Span.File)
	assert.Contains(t, d.Message, "f")
	assert.Contains(t, d.Message, "V")

	// Partial output is never emitted.
	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_OtherRecordsUnaffectedByOneFailure(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "generated")

	mixed := conflictYAML + `  - name: Session
    annotations:
      - view_as(TokenView)
    fields:
      - name: token
        type: String
        annotations:
          - ref_in(TokenView)
`
	path := writeDef(t, dir, "mixed.yaml", mixed)

	summary, err := Run(context.Background(), zerolog.Nop(), testOptions(outDir), []string{path})

	require.NoError(t, err)
	assert.True(t, summary.Diagnostics.HasErrors())

	// The clean record in the same file still generates.
	content, readErr := os.ReadFile(filepath.Join(outDir, "session_views.rs"))
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "struct TokenView")
}

func TestRun_CheckOnlyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "generated")
	path := writeDef(t, dir, "point.yaml", pointYAML)

	opts := testOptions(outDir)
	opts.CheckOnly = true

	summary, err := Run(context.Background(), zerolog.Nop(), opts, []string{path})

	require.NoError(t, err)
	assert.False(t, summary.Diagnostics.HasErrors())
	require.Len(t, summary.Resolved(), 1)
	assert.Equal(t, []string{"ReadView", "WriteView"}, summary.Resolved()[0].ViewNames())

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingDefinitionFile(t *testing.T) {
	dir := t.TempDir()

	summary, err := Run(context.Background(), zerolog.Nop(), testOptions(dir), []string{
		filepath.Join(dir, "missing.yaml"),
	})

	require.NoError(t, err)
	require.Len(t, summary.Diagnostics.Errors, 1)
	assert.Equal(t, "definition-load", summary.Diagnostics.Errors[0].Code)
}

func TestRun_ParallelFilesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "generated")

	paths := []string{
		writeDef(t, dir, "point.yaml", pointYAML),
		writeDef(t, dir, "broken.yaml", conflictYAML),
	}

	summary, err := Run(context.Background(), zerolog.Nop(), testOptions(outDir), paths)

	require.NoError(t, err)
	assert.True(t, summary.Diagnostics.HasErrors())

	// Outcomes stay in input order regardless of scheduling.
	require.Len(t, summary.Files, 2)
	assert.Equal(t, paths[0], summary.Files[0].Path)
	assert.Equal(t, paths[1], summary.Files[1].Path)
	assert.Len(t, summary.Files[0].Generated, 1)
	assert.Empty(t, summary.Files[1].Generated)

	_, readErr := os.ReadFile(filepath.Join(outDir, "point_views.rs"))
	assert.NoError(t, readErr)
}
