package sanexml

import (
	"encoding/xml"
	"errors"
	"fmt"
)

var (
	// ErrInvalidScope is returned when a tree operation receives a scope
	// value that is neither a *Tree nor a *Node.
	ErrInvalidScope = errors.New("sanexml: scope must be a *Tree or a *Node")

	// ErrInvalidArgument is returned for out-of-range or malformed
	// arguments, before any mutation has taken place.
	ErrInvalidArgument = errors.New("sanexml: invalid argument")
)

// A ParseError reports a failure of the strict parsing stage. The lenient
// pipeline repairs most malformed constructs before this stage runs, so a
// ParseError from FromString means the input was beyond recovery.
type ParseError struct {
	// Line is the 1-based input line of the failure, or 0 if unknown.
	Line int

	Err error
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Err: err}
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		pe.Line = se.Line
	}
	return pe
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("sanexml: parse error on line %d: %v", e.Line, e.Err)
	}
	return "sanexml: parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
