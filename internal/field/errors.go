package field

import (
	"errors"
	"fmt"
	"strings"
)

// FieldGenerationError wraps any failure while generating a field's value.
type FieldGenerationError struct {
	Field string
	Err   error
}

func (e *FieldGenerationError) Error() string {
	return fmt.Sprintf("generating field %q: %v", e.Field, e.Err)
}

func (e *FieldGenerationError) Unwrap() error { return e.Err }

// UnresolvedReferenceError reports a referenced column that is not present
// in the row when the referencing field runs. This is an ordering bug in the
// template, not a data error.
type UnresolvedReferenceError struct {
	Field  string
	Column string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("field %q references column %q which has not been generated yet", e.Field, e.Column)
}

// TransformerError reports a transformer failure with the partial row at
// the time of failure.
type TransformerError struct {
	Field       string
	Transformer string
	Row         Row
	Err         error
}

func (e *TransformerError) Error() string {
	return fmt.Sprintf("transformer %q on field %q failed: %v (row: %s)", e.Transformer, e.Field, e.Err, describeRow(e.Row))
}

func (e *TransformerError) Unwrap() error { return e.Err }

// CapacityExceededError reports an exhausted identifier space. It is fatal
// and never replaced by a field's error value.
type CapacityExceededError struct {
	Field   string
	Message string
}

func (e *CapacityExceededError) Error() string {
	if e.Field == "" {
		return "capacity exceeded: " + e.Message
	}
	return fmt.Sprintf("capacity exceeded for field %q: %s", e.Field, e.Message)
}

// InvalidProbabilityError reports option probabilities that do not sum to 1.
type InvalidProbabilityError struct {
	Field string
	Sum   float64
}

func (e *InvalidProbabilityError) Error() string {
	return fmt.Sprintf("field %q: probabilities provided do not add up to 1 (sum %v)", e.Field, e.Sum)
}

// LookupColumnNotFoundError reports a lookup column missing from a mapping
// file.
type LookupColumnNotFoundError struct {
	Field  string
	Column string
	File   string
}

func (e *LookupColumnNotFoundError) Error() string {
	return fmt.Sprintf("field %q: lookup value field %q not found in file %s", e.Field, e.Column, e.File)
}

// RetryLimitError reports a resampling loop that reached the configured
// retry cap.
type RetryLimitError struct {
	Field    string
	Attempts int
	Reason   string
}

func (e *RetryLimitError) Error() string {
	return fmt.Sprintf("field %q: gave up after %d attempts: %s", e.Field, e.Attempts, e.Reason)
}

// IsCapacityExceeded reports whether err is or wraps a CapacityExceededError.
func IsCapacityExceeded(err error) bool {
	var ce *CapacityExceededError
	return errors.As(err, &ce)
}

// IsUnresolvedReference reports whether err is or wraps an
// UnresolvedReferenceError.
func IsUnresolvedReference(err error) bool {
	var ue *UnresolvedReferenceError
	return errors.As(err, &ue)
}

// IsTransformerError reports whether err is or wraps a TransformerError.
func IsTransformerError(err error) bool {
	var te *TransformerError
	return errors.As(err, &te)
}

// IsInvalidProbability reports whether err is or wraps an
// InvalidProbabilityError.
func IsInvalidProbability(err error) bool {
	var pe *InvalidProbabilityError
	return errors.As(err, &pe)
}

// IsLookupColumnNotFound reports whether err is or wraps a
// LookupColumnNotFoundError.
func IsLookupColumnNotFound(err error) bool {
	var le *LookupColumnNotFoundError
	return errors.As(err, &le)
}

// IsRetryLimit reports whether err is or wraps a RetryLimitError.
func IsRetryLimit(err error) bool {
	var re *RetryLimitError
	return errors.As(err, &re)
}

func describeRow(row Row) string {
	if len(row) == 0 {
		return "{}"
	}
	keys := sortedKeys(row)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, row[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
