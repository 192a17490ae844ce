package todo

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrEmptyText = errors.New("text cannot be empty")
	ErrNotFound  = errors.New("todo not found")
	ErrNoOp      = errors.New("nothing to do")
)

// ValidationError is returned when input text is empty or whitespace-only.
type ValidationError struct {
	Field string // "text" on add, "new text" on rename
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when an operation names an id the store does not hold.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("todo with ID %d not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NoOpWarning is returned when an operation is redundant: completing a
// completed record or clearing when nothing is completed.
type NoOpWarning struct {
	Op string
	ID int // zero when the operation is not about a single record
}

func (e *NoOpWarning) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s: todo with ID %d: %s", e.Op, e.ID, ErrNoOp)
	}
	return fmt.Sprintf("%s: %s", e.Op, ErrNoOp)
}

// Is reports whether target is ErrNoOp.
func (e *NoOpWarning) Is(target error) bool {
	return target == ErrNoOp
}

// IsWarning reports whether err marks a redundant call rather than a failure.
func IsWarning(err error) bool {
	return errors.Is(err, ErrNoOp)
}
