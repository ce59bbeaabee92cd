package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an identifier is absent from a store,
	// or malformed.
	ErrNotFound = errors.New("game not found")

	// ErrDuplicate is returned by stores on unique-key violations.
	ErrDuplicate = errors.New("duplicate key")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// StoreError wraps any persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// storeErr wraps err as a StoreError, passing through nil and ErrNotFound
// so callers can still branch on a missing record.
func storeErr(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// AuthError covers bad credentials and duplicate usernames.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }
