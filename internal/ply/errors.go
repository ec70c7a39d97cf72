package ply

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrHeaderDecode is returned when the header cannot be read or is not valid ASCII.
	ErrHeaderDecode = errors.New("header decode error")

	// ErrMissingCoordinateField is returned when the vertex element lacks one of x, y, z.
	ErrMissingCoordinateField = errors.New("missing coordinate field")

	// ErrUnsupportedLayout is returned when the vertex records cannot be located, e.g. they
	// follow a binary element holding list properties.
	ErrUnsupportedLayout = errors.New("unsupported record layout")

	// ErrTruncatedRecord marks a binary body that ends before the declared vertex count.
	// It is absorbed by the decoder and only reported through DecodeStats.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrMalformedTextRecord marks an ascii record whose coordinates cannot be parsed.
	// It is absorbed by the decoder and only reported through DecodeStats.
	ErrMalformedTextRecord = errors.New("malformed text record")
)

// HeaderError reports the header line that could not be interpreted.
type HeaderError struct {
	Line   int
	Text   string
	Reason string
}

func (e *HeaderError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d %q: %s", ErrHeaderDecode, e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrHeaderDecode, e.Reason)
}

func (e *HeaderError) Unwrap() error {
	return ErrHeaderDecode
}

// FieldError reports a coordinate field that is absent or ambiguous in the vertex element.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q %s", ErrMissingCoordinateField, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingCoordinateField
}
