// Package record defines the input data model for view generation: record
// definitions with their fields, generic parameters and raw annotations,
// plus the YAML loader that produces them.
//
// A record definition is read once per generation pass and never mutated.
package record
