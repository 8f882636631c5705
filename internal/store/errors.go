package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backing key-value store could not be read or written
	ErrUnavailable = errors.New("store unavailable")

	// ErrDeserialization means the stored value is not a valid encoded task list
	ErrDeserialization = errors.New("invalid stored task data")

	// ErrSerialization means the task list could not be encoded
	ErrSerialization = errors.New("encoding task data")
)

// Error reports a failed store operation. Kind is one of the sentinel errors above.
type Error struct {
	Op   string // "load", "save" or "clear"
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap lets errors.Is match both the kind and the underlying cause
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
