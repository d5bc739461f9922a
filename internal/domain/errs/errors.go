// Package errs defines the error taxonomy shared by the outfit and analysis pipelines.
package errs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a malformed or incomplete request. It is the caller's fault
// and is surfaced before any provider call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// ExternalServiceError wraps a failure of the generative provider on the primary path.
type ExternalServiceError struct {
	Provider string
	Quota    bool
	Err      error
}

func NewExternalServiceError(provider string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		Provider: provider,
		Quota:    isQuotaError(err),
		Err:      err,
	}
}

func (e *ExternalServiceError) Error() string {
	if e.Quota {
		return fmt.Sprintf("%s: service temporarily unavailable due to high demand: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: generation failed: %v", e.Provider, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the provider call ran out of time.
func (e *ExternalServiceError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// ParseError means the provider text did not contain a decodable JSON object.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse failed: %s: %v", e.Reason, e.Err)
	}
	return "parse failed: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError means a JSON object was found but required fields were missing
// or had the wrong type.
type SchemaError struct {
	MissingFields []string
}

func (e *SchemaError) Error() string {
	return "schema mismatch: missing or invalid " + strings.Join(e.MissingFields, ", ")
}

// IsGenerationFailure reports whether err is a primary-path failure that leaves the
// caller without a usable result.
func IsGenerationFailure(err error) bool {
	var ext *ExternalServiceError
	var parse *ParseError
	var schema *SchemaError
	return errors.As(err, &ext) || errors.As(err, &parse) || errors.As(err, &schema)
}

// IsQuota reports whether err carries a provider quota exhaustion.
func IsQuota(err error) bool {
	var ext *ExternalServiceError
	return errors.As(err, &ext) && ext.Quota
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted") ||
		strings.Contains(errStr, "error 429") ||
		strings.Contains(errStr, "429 too many requests") ||
		strings.Contains(errStr, "insufficient_quota")
}
