package attr

import (
	"fmt"
	"unicode"

	"viewgen/internal/record"
)

// Recognized annotation keys.
const (
	// KeyViewAs declares view names at the record level.
	KeyViewAs = "view_as"
	// KeyRefIn marks a field as a shared-borrow member of the listed views.
	KeyRefIn = "ref_in"
	// KeyMutIn marks a field as an exclusive-borrow member of the listed views.
	KeyMutIn = "mut_in"
)

// Ident is one identifier parsed out of an annotation payload.
type Ident struct {
	Name string
	Span record.Span
}

// SyntaxError reports a malformed annotation argument list. It carries the
// annotation's span plus the byte offset of the offending token within the
// payload, so the diagnostic can point at the exact spot.
type SyntaxError struct {
	Span    record.Span
	Offset  int
	Payload string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: malformed annotation arguments %q at offset %d: %s",
		e.Span, e.Payload, e.Offset, e.Reason)
}

// parser state inside the argument list.
type listState int

const (
	wantIdentOrClose listState = iota // after '(' or ','
	wantSepOrClose                    // after an identifier
	closed                            // after ')'
)

// ParseIdentList parses a parenthesized identifier list. An empty payload
// (annotation without arguments) yields an empty list rather than an
// error. Duplicates are preserved; callers apply set semantics.
func ParseIdentList(payload string, span record.Span) ([]Ident, error) {
	if payload == "" {
		return nil, nil
	}

	fail := func(offset int, reason string) error {
		return &SyntaxError{Span: span, Offset: offset, Payload: payload, Reason: reason}
	}

	runes := []rune(payload)
	if runes[0] != '(' {
		return nil, fail(0, "expected '('")
	}

	var idents []Ident

	state := wantIdentOrClose

	i := 1
	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == ')':
			if state == closed {
				return nil, fail(i, "unbalanced ')'")
			}

			state = closed
			i++

		case r == ',':
			if state != wantSepOrClose {
				return nil, fail(i, "unexpected ','")
			}

			state = wantIdentOrClose
			i++

		case isIdentStart(r):
			if state != wantIdentOrClose {
				return nil, fail(i, "expected ',' or ')'")
			}

			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}

			idents = append(idents, Ident{
				Name: string(runes[start:i]),
				Span: shift(span, start),
			})
			state = wantSepOrClose

		default:
			if state == closed {
				return nil, fail(i, "unexpected text after ')'")
			}

			return nil, fail(i, fmt.Sprintf("invalid token %q", r))
		}
	}

	if state != closed {
		return nil, fail(len(runes), "unbalanced '(': missing ')'")
	}

	return idents, nil
}

// Collect gathers the identifiers of every annotation with the given key.
// Multiple annotations with the same key each contribute their identifiers;
// duplicates are not removed here.
func Collect(anns []record.Annotation, key string) ([]Ident, error) {
	var idents []Ident

	for _, ann := range anns {
		if ann.Key() != key {
			continue
		}

		// Offsets inside the payload are relative to the opening paren,
		// not the annotation key.
		span := shift(ann.Span, len(ann.Raw)-len(ann.Payload()))

		parsed, err := ParseIdentList(ann.Payload(), span)
		if err != nil {
			return nil, err
		}

		idents = append(idents, parsed...)
	}

	return idents, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// shift moves the span's column by the payload offset, keeping diagnostics
// pointed at the identifier rather than the annotation start.
func shift(span record.Span, offset int) record.Span {
	if span.Column > 0 {
		span.Column += offset
	}

	return span
}
