// Package attr parses annotation argument payloads into view-name
// identifiers.
//
// An annotation payload is a parenthesized, comma-separated identifier
// list, e.g. "(ReadView, WriteView)". An empty or omitted payload yields
// an empty list. Anything else is a syntax error anchored to the
// annotation's source span.
package attr
