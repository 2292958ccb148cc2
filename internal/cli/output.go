package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/headfake/internal/builder"
	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/fieldset"
	"github.com/roach88/headfake/internal/spec"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Generation or output failure
	ExitCommandError = 2 // Command error (bad flags, unreadable or invalid template)
)

// Report codes for errors without a more specific code.
const (
	ErrCodeGeneric  = "E001"
	ErrCodeBuild    = "E002" // Template could not be built into a fieldset
	ErrCodeGenerate = "E003" // Row generation failed
	ErrCodeOutput   = "E007" // Dataset could not be written
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// reportCode picks the report code for err.
func reportCode(err error) string {
	var le *spec.LoadError
	switch {
	case errors.As(err, &le):
		return le.Code
	case builder.IsClassNotFound(err), builder.IsMissingParameter(err),
		builder.IsUnknownParameter(err), fieldset.IsDuplicateField(err):
		return ErrCodeBuild
	case field.IsCapacityExceeded(err):
		return ErrCodeGenerate
	}
	var be *builder.BuildError
	if errors.As(err, &be) {
		return ErrCodeBuild
	}
	return ErrCodeGeneric
}

// OutputFormatter handles JSON vs text reports for CLI commands. Datasets
// are written by the output package, not through the formatter.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs a successful result. In text mode text is printed
// instead of data.
func (f *OutputFormatter) Success(data any, text string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns it as an ExitError with exit code.
func (f *OutputFormatter) Fail(exit int, message string, err error) error {
	_ = f.Error(reportCode(err), fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exit, message, err)
}
