// Package validation checks candidate submissions and converts them into store records.
package validation

import (
	"fmt"
	"strings"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when a submission fails one or more field checks.
type Error struct {
	Fields []FieldError
	Cause  error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("validation error: %v", e.Cause)
		}
		return "validation error"
	}

	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return e.Cause
}
