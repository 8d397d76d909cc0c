// Package resolve combines record-level view declarations with field-level
// membership annotations into per-view field tables.
//
// Views are kept in first-seen declaration order and fields in record
// order, so generated output is stable across runs.
package resolve
