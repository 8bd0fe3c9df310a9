package fields

import (
	"errors"
	"fmt"
)

// DeclarationError reports a field constructed with inconsistent or missing
// parameters. It is returned by the New* factories and never at value time.
type DeclarationError struct {
	// Field is the declared column name, possibly empty when the name
	// itself is the problem.
	Field string
	// Param names the offending constructor parameter.
	Param string
	// Reason describes what is wrong with it.
	Reason string
}

func (e *DeclarationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("fields: invalid declaration: %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("fields: invalid declaration of %q: %s: %s", e.Field, e.Param, e.Reason)
}

// ValidationError reports a value rejected by a field. It is returned by
// Validate and by the operations that validate before transforming.
type ValidationError struct {
	// Field is the column the value was offered to.
	Field string
	// Value is the rejected value.
	Value any
	// Reason describes why it was rejected.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fields: invalid value for %q: %s", e.Field, e.Reason)
}

// IsDeclaration reports whether err is (or wraps) a DeclarationError.
func IsDeclaration(err error) bool {
	var de *DeclarationError
	return errors.As(err, &de)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationErr(f Field, v any, reason string) error {
	return &ValidationError{Field: f.Column(), Value: v, Reason: reason}
}
