package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	ErrInvariantViolation = errors.New("invariant violation")
	ErrCycleDetected      = errors.New("cycle detected")
)

// GraphError provides structured error information for build and annotate operations.
type GraphError struct {
	Op      string   // Operation that failed (e.g., "BuildClosure", "Annotate")
	Term    string   // Term ID involved (if applicable)
	Path    []string // Offending term path, for cycles
	Context string   // Additional context
	Cause   error    // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Term != "" {
		fmt.Fprintf(&b, " term %s", e.Term)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " (path %s)", strings.Join(e.Path, " -> "))
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " (%s)", e.Context)
	}
	fmt.Fprintf(&b, ": %v", e.Cause)
	return b.String()
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Term sets the term the error refers to.
func (b *ErrorBuilder) Term(id string) *ErrorBuilder {
	b.err.Term = id
	return b
}

// Path sets the offending path. The slice is copied.
func (b *ErrorBuilder) Path(path []string) *ErrorBuilder {
	b.err.Path = append([]string(nil), path...)
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// CycleError creates a cycle error for the given path. The last element
// of path is the term that closed the cycle.
func CycleError(op string, path []string) error {
	term := ""
	if len(path) > 0 {
		term = path[len(path)-1]
	}
	return NewError(op).Term(term).Path(path).Cause(ErrCycleDetected).Err()
}

// InvariantError creates an invariant violation error.
func InvariantError(op, term, format string, args ...any) error {
	return NewError(op).Term(term).Context(format, args...).Cause(ErrInvariantViolation).Err()
}

// IsCycle returns true if the error reports a hierarchy cycle.
func IsCycle(err error) bool {
	return errors.Is(err, ErrCycleDetected)
}

// IsInvariantViolation returns true if the error reports a violated invariant.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}
