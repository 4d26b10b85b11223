package ontology

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrTermNotFound = errors.New("term not found")
	ErrMalformed    = errors.New("malformed OBO document")
)

// TermNotFoundError creates a not found error for id.
func TermNotFoundError(op, id string) error {
	return fmt.Errorf("%s %s: %w", op, id, ErrTermNotFound)
}

// ParseError reports a malformed line of an OBO document.
type ParseError struct {
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap returns ErrMalformed so callers can match with errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// IsNotFound returns true if the error is a term not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTermNotFound)
}
