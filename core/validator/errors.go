package validator

import (
	"errors"
	"strings"
)

// ErrInvalidTarget is returned by ValidateStruct for anything but a struct pointer.
var ErrInvalidTarget = errors.New("validator: must pass a pointer to struct")

// ValidationError describes one failed rule. An empty Field marks an
// object-level (global) error that is not tied to a single input.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failed rule in declaration order.
type ValidationErrors []ValidationError

// Add appends err.
func (v *ValidationErrors) Add(err ValidationError) {
	*v = append(*v, err)
}

// IsEmpty reports whether no rule failed.
func (v ValidationErrors) IsEmpty() bool {
	return len(v) == 0
}

// Has reports whether field has at least one error.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (v ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, e := range v {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Global returns the messages of object-level errors.
func (v ValidationErrors) Global() []string {
	return v.Get("")
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is, or wraps, ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors unwraps ValidationErrors from err, or returns nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
