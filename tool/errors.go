package tool

import (
	"fmt"
	"strings"
)

// MissingFieldError is returned when a required field is absent from the
// arguments payload.
type MissingFieldError struct {
	Field string
}

// Error returns a formatted error message including the field path.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("tool: missing required field %q", e.Field)
}

// TypeMismatchError is returned when a field's runtime value does not match
// the kind its schema declares.
type TypeMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

// Error returns a formatted error message naming the expected and actual kinds.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("tool: field %q: expected %s but got %s", e.Field, e.Expected, e.Actual)
}

// InvalidEnumError is returned when a field's value is not among the values
// its schema permits.
type InvalidEnumError struct {
	Field   string
	Value   any
	Allowed []any
}

// Error returns a formatted error message listing the allowed values.
func (e *InvalidEnumError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, v := range e.Allowed {
		allowed[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("tool: field %q: value %v is not one of [%s]", e.Field, e.Value, strings.Join(allowed, ", "))
}

// InvalidArgumentsError is returned when the arguments payload is not valid
// JSON or does not decode to an object.
type InvalidArgumentsError struct {
	Err error
}

// Error returns a formatted error message including the decode failure.
func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("tool: invalid arguments payload: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *InvalidArgumentsError) Unwrap() error {
	return e.Err
}

// UnknownToolError is returned when a tool call references an unregistered
// tool name.
type UnknownToolError struct {
	Name string
}

// Error returns a formatted error message including the tool name.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool: unknown tool: %s", e.Name)
}

// AlreadyRegisteredError is returned when registering a tool whose name is
// already taken.
type AlreadyRegisteredError struct {
	Name string
}

// Error returns a formatted error message including the duplicate tool name.
func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("tool: already registered: %s", e.Name)
}

// BuildError is returned by [Builder.Build] when a required field was not
// supplied.
type BuildError struct {
	Field string
}

// Error returns a formatted error message naming the missing builder field.
func (e *BuildError) Error() string {
	return fmt.Sprintf("tool: builder: %s is required", e.Field)
}
