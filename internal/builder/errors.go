package builder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes build-time errors.
type ErrorCode string

const (
	// ErrCodeClassNotFound indicates a class reference absent from the registry.
	ErrCodeClassNotFound ErrorCode = "CLASS_NOT_FOUND"

	// ErrCodeMissingParameter indicates required constructor parameters were absent.
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"

	// ErrCodeUnknownParameter indicates parameters the constructor does not accept.
	ErrCodeUnknownParameter ErrorCode = "UNKNOWN_PARAMETER"

	// ErrCodeParameterType indicates a parameter with an unusable type.
	ErrCodeParameterType ErrorCode = "PARAMETER_TYPE"

	// ErrCodeConstructor indicates any other constructor failure.
	ErrCodeConstructor ErrorCode = "CONSTRUCTOR_FAILED"
)

// ClassNotFoundError is returned when a "class" value has no registered factory.
type ClassNotFoundError struct {
	Class string
	Name  string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("%s: class %q is not registered (node %q)", ErrCodeClassNotFound, e.Class, e.Name)
}

// MissingParameterError names the required parameters a constructor did not receive.
type MissingParameterError struct {
	Class  string
	Name   string
	Params []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: the following required parameter(s) were missing for %q (%s): %s",
		ErrCodeMissingParameter, e.Name, e.Class, quoteAll(e.Params))
}

// UnknownParameterError names parameters a constructor does not accept.
type UnknownParameterError struct {
	Class  string
	Name   string
	Params []string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("%s: unexpected parameter(s) for %q (%s): %s",
		ErrCodeUnknownParameter, e.Name, e.Class, quoteAll(e.Params))
}

// ParameterTypeError reports a parameter whose value cannot be used as the expected type.
type ParameterTypeError struct {
	Param    string
	Expected string
	Got      any
}

func (e *ParameterTypeError) Error() string {
	return fmt.Sprintf("%s: parameter %q must be %s, got %T (%v)", ErrCodeParameterType, e.Param, e.Expected, e.Got, e.Got)
}

// BuildError wraps an arbitrary constructor failure with the node's name and class.
type BuildError struct {
	Class string
	Name  string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: problem creating %q (%s): %v", ErrCodeConstructor, e.Name, e.Class, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// IsClassNotFound reports whether err is or wraps a ClassNotFoundError.
func IsClassNotFound(err error) bool {
	var e *ClassNotFoundError
	return errors.As(err, &e)
}

// IsMissingParameter reports whether err is or wraps a MissingParameterError.
func IsMissingParameter(err error) bool {
	var e *MissingParameterError
	return errors.As(err, &e)
}

// IsUnknownParameter reports whether err is or wraps an UnknownParameterError.
func IsUnknownParameter(err error) bool {
	var e *UnknownParameterError
	return errors.As(err, &e)
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, ", ")
}
