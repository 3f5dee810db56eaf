package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the parent of every ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnknownCard   = errors.New("card number is not assigned to anyone")
	ErrInvalidAction = errors.New("unknown lifecycle action")

	ErrDeleted     = errors.New("record has been deleted")
	ErrHidden      = errors.New("record is hidden")
	ErrNotEditable = errors.New("deleted or hidden records cannot be modified")
)

// ValidationError names the offending request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
