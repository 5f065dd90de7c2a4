package domain

import "fmt"

// ValidationError reports a caller-correctable problem with one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required returns a ValidationError for a missing or blank field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

// Invalid returns a ValidationError with a formatted message.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
