// Package driver orchestrates generation passes: load definitions,
// resolve views, emit artifacts, write files.
//
// Each definition file is an independent pass with no shared mutable
// state, so files are processed in parallel. Within a pass, a record that
// fails to resolve is reported and emits nothing; other records in the
// same file are unaffected.
package driver

import (
	"context"
	"errors"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"viewgen/internal/attr"
	"viewgen/internal/diag"
	"viewgen/internal/emit"
	"viewgen/internal/record"
	"viewgen/internal/resolve"
)

// Options configures a run.
type Options struct {
	// Emit configures the type emitter and output location.
	Emit emit.Config
	// CheckOnly resolves and diagnoses without emitting or writing.
	CheckOnly bool
}

// FileResult is the outcome of one definition file's pass.
type FileResult struct {
	Path        string
	Resolved    []*resolve.Result
	Generated   []emit.GeneratedFile
	Diagnostics diag.Diagnostics
}

// Summary aggregates the outcome of a whole run.
type Summary struct {
	Files       []FileResult
	Diagnostics diag.Diagnostics
}

// Resolved returns every resolved record across all files.
func (s *Summary) Resolved() []*resolve.Result {
	var all []*resolve.Result
	for i := range s.Files {
		all = append(all, s.Files[i].Resolved...)
	}

	return all
}

// Run processes every definition file. Parse and resolution failures
// surface as error diagnostics in the summary, not as a returned error;
// the returned error is reserved for infrastructure failures such as
// unwritable output.
func Run(ctx context.Context, logger zerolog.Logger, opts Options, paths []string) (*Summary, error) {
	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = runFile(logger, opts, path)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Files: results}
	for i := range results {
		summary.Diagnostics.Merge(results[i].Diagnostics)
	}

	if !opts.CheckOnly {
		if err := writeAll(logger, opts, summary); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

// runFile executes one pass: parse the file, resolve every record in it,
// generate artifacts for the records that resolved cleanly.
func runFile(logger zerolog.Logger, opts Options, path string) FileResult {
	res := FileResult{Path: path}

	f, err := record.Load(path)
	if err != nil {
		res.Diagnostics.AddError("definition-load", err.Error(), record.Span{File: path})
		return res
	}

	logger.Debug().Str("file", path).Int("records", len(f.Records)).Msg("loaded definitions")

	for i := range f.Records {
		def := &f.Records[i]

		resolved, err := resolve.Resolve(def)
		if err != nil {
			d := toDiagnostic(err, def.Span)
			res.Diagnostics.Errors = append(res.Diagnostics.Errors, d)

			logger.Debug().Str("record", def.Name).Err(err).Msg("resolution failed")

			continue
		}

		res.Diagnostics.Merge(resolved.Warnings)
		res.Resolved = append(res.Resolved, resolved)

		logger.Debug().
			Str("record", def.Name).
			Strs("views", resolved.ViewNames()).
			Msg("resolved views")
	}

	if opts.CheckOnly || len(res.Resolved) == 0 {
		return res
	}

	gen := emit.NewGenerator(opts.Emit)

	files, err := gen.Generate(res.Resolved)
	if err != nil {
		res.Diagnostics.AddError("emit", err.Error(), record.Span{File: path})
		return res
	}

	res.Generated = files

	return res
}

func writeAll(logger zerolog.Logger, opts Options, summary *Summary) error {
	var files []emit.GeneratedFile
	for i := range summary.Files {
		files = append(files, summary.Files[i].Generated...)
	}

	if len(files) == 0 {
		return nil
	}

	if err := emit.WriteFiles(files, opts.Emit.OutputDir); err != nil {
		return err
	}

	logger.Info().Int("files", len(files)).Str("dir", opts.Emit.OutputDir).Msg("wrote generated files")

	return nil
}

// toDiagnostic maps the typed resolution errors onto span-anchored
// diagnostics, falling back to the record's own span.
func toDiagnostic(err error, fallback record.Span) diag.Diagnostic {
	var (
		syntaxErr   *attr.SyntaxError
		shapeErr    *resolve.UnsupportedShapeError
		conflictErr *resolve.ConflictError
	)

	switch {
	case errors.As(err, &syntaxErr):
		return diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     "annotation-syntax",
			Message:  syntaxErr.Reason + " in annotation arguments " + syntaxErr.Payload,
			Span:     syntaxErr.Span,
		}

	case errors.As(err, &shapeErr):
		return diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     "unsupported-shape",
			Message:  "view_as can only apply to a named-field struct, but " + shapeErr.Record + " is a " + shapeErr.Shape.String(),
			Span:     shapeErr.Span,
		}

	case errors.As(err, &conflictErr):
		return diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     "view-conflict",
			Message:  "field " + conflictErr.Field + " is annotated both ref_in and mut_in for view " + conflictErr.View,
			Span:     conflictErr.Span,
		}

	default:
		return diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     "resolve",
			Message:  err.Error(),
			Span:     fallback,
		}
	}
}
