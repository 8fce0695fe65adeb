// Package errors provides sentinel errors and structured error types for the n CLI.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DetailError captures structured error information for user-facing output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the offending path or template name (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for _, k := range slices.Sorted(maps.Keys(e.Context)) {
		fmt.Fprintf(&b, "  %s: %s\n", k, e.Context[k])
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string, cause error) error {
	if cause == nil {
		cause = ErrValidation
	}
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    cause,
	}
}

// NewProviderError creates an AI provider error with details. The result
// always matches ErrProvider.
func NewProviderError(message string, context map[string]string, hint string, cause error) error {
	switch {
	case cause == nil:
		cause = ErrProvider
	case !errors.Is(cause, ErrProvider):
		cause = fmt.Errorf("%w: %w", ErrProvider, cause)
	}
	return &DetailError{
		Type:    "provider request failed",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error with details. The result
// always matches ErrConfig.
func NewConfigError(message, location, hint string, cause error) error {
	switch {
	case cause == nil:
		cause = ErrConfig
	case !errors.Is(cause, ErrConfig):
		cause = fmt.Errorf("%w: %w", ErrConfig, cause)
	}
	return &DetailError{
		Type:     "configuration error",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    cause,
	}
}

// WrapIO marks err as a filesystem failure while keeping it in the chain.
func WrapIO(err error, op, path string) error {
	return fmt.Errorf("%s %s: %w: %w", op, path, ErrIO, err)
}
