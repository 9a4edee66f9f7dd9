package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing id and an id that exists under a
	// different parent; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a duplicate many-to-many pair.
	ErrConflict = errors.New("already exists")
)

// ValidationError carries a caller-facing message for a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
