package binder

import (
	"errors"
	"fmt"
)

// Error variables define common binding failures.
var (
	// ErrUnsupportedMediaType indicates a Content-Type the binder cannot read.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrFailedToParseForm indicates form data parsing or conversion failed.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToParseQuery indicates query parameter conversion failed.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")

	// ErrMissingContentType indicates the request lacks a Content-Type header.
	ErrMissingContentType = errors.New("missing content type")

	// ErrInvalidTarget indicates the destination is not a pointer to a struct.
	ErrInvalidTarget = errors.New("target must be a non-nil pointer to struct")
)

// FieldError reports a value that could not be converted to its field's type.
// Field is the form parameter name, not the Go field name.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
