package database

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is matched by every [TypeMismatchError].
	ErrTypeMismatch = errors.New("type mismatch")
)

// TypeMismatchError is returned when a connection option cannot be converted to the type the
// driver expects.
type TypeMismatchError struct {
	Key   string
	Value any
	Want  string
	Err   error
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("option %q: cannot convert %v (%T) to %s", e.Key, e.Value, e.Value, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TypeMismatchError) Unwrap() error { return e.Err }

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
