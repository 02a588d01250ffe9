package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no post matches the lookup.
var ErrNotFound = errors.New("post not found")

// ValidationError reports a required field that was empty after trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " must not be empty"
}

// StorageCorruptError wraps a persisted value that could not be decoded.
type StorageCorruptError struct {
	Key string
	Err error
}

func (e *StorageCorruptError) Error() string {
	return fmt.Sprintf("corrupt value at %q: %v", e.Key, e.Err)
}

func (e *StorageCorruptError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
