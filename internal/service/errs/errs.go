// Package errs holds the error taxonomy shared by services and transports.
package errs

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when input refers to a record that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrConflict is returned when a versioned write found the row changed since it was read.
	ErrConflict = errors.New("concurrency conflict")
	// ErrInUse is returned when deleting reference data that other records still point to.
	ErrInUse = errors.New("still referenced")
)

// FieldError describes one violated input rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every violated rule of a request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a violation.
func (e *ValidationError) Add(field, rule, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Rule: rule, Message: message})
}

// Merge appends the violations carried by err, if it is a validation error,
// and reports whether it was one.
func (e *ValidationError) Merge(err error) bool {
	other, ok := AsValidation(err)
	if ok {
		e.Fields = append(e.Fields, other.Fields...)
	}

	return ok
}

// OrNil returns e as an error when it holds at least one violation.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}

	return e
}

// AsValidation unwraps err into a *ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}
