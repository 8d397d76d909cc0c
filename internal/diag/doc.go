// Package diag provides structured, span-anchored diagnostics for the
// view generator.
//
// Every parse or resolution failure is reported against the offending
// annotation's source position, so the affected record, field or view is
// identifiable without reading generator internals.
package diag
