package sphinx

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document looked up by id does not exist.
var ErrNotFound = errors.New("sphinx: document not found")

// NotFoundError represents a document that is not found in an index.
type NotFoundError struct {
	index string
	id    any
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sphinx: document %v not found in %s", e.id, e.index)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Index returns the searched index.
func (e *NotFoundError) Index() string {
	return e.index
}

// ID returns the document id that was searched for.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the document.
func NewNotFoundError(index string, id any) *NotFoundError {
	return &NotFoundError{index: index, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// StatementError is returned when a statement fails to render or execute.
// Op is the statement verb, e.g. "insert" or "update".
type StatementError struct {
	Op    string
	Index string
	Err   error
}

// Error returns the error string.
func (e *StatementError) Error() string {
	if e.Index == "" {
		return fmt.Sprintf("sphinx: %s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("sphinx: %s %s: %s", e.Op, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// NewStatementError returns a new StatementError.
func NewStatementError(op, index string, err error) *StatementError {
	return &StatementError{Op: op, Index: index, Err: err}
}

// IsStatementError returns true if the error is a StatementError.
func IsStatementError(err error) bool {
	if err == nil {
		return false
	}
	var e *StatementError
	return errors.As(err, &e)
}
