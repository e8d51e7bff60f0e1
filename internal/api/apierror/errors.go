package apierror

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors keeps validation messages in the order they were reported.
type FieldErrors []FieldError

// Add appends a message for field. The first message reported for a field wins.
func (fe *FieldErrors) Add(field, message string) {
	for _, e := range *fe {
		if e.Field == field {
			return
		}
	}
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// Get returns the message recorded for field.
func (fe FieldErrors) Get(field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// ValidationError is a structural validation failure on a request body.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// MalformedBodyError is returned when the request body cannot be decoded.
type MalformedBodyError struct {
	Err error
}

func (e *MalformedBodyError) Error() string {
	if e.Err == nil {
		return "malformed request body"
	}
	return "malformed request body: " + e.Err.Error()
}

func (e *MalformedBodyError) Unwrap() error { return e.Err }

// MissingParameterError is returned when a required request parameter is absent.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter '%s' is required", e.Name)
}

// TypeMismatchError is returned when a path or query parameter cannot be
// converted to the expected type.
type TypeMismatchError struct {
	Name     string
	Value    string
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("parameter '%s' must be of type %s, got '%s'", e.Name, e.Expected, e.Value)
}
