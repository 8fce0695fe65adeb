package errors

import (
	"errors"
	"os"
)

// Exit codes returned by the n binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified or filesystem error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates input was rejected before any write.
	ExitValidationError = 2

	// ExitProviderError indicates the AI provider failed.
	ExitProviderError = 3

	// ExitPermissionDenied indicates insufficient filesystem permissions.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a template or file was not found.
	ExitNotFound = 5

	// ExitConflict indicates a target file already exists.
	ExitConflict = 6

	// ExitConfigError indicates configuration could not be loaded.
	ExitConfigError = 7
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed reports whether the command layer already wrote the error to stderr.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with the exit code derived from its chain.
func NewExitError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitCodeFromError(err)}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrProvider):
		return ExitProviderError
	case errors.Is(err, ErrFileExists):
		return ExitConflict
	case errors.Is(err, ErrTemplateNotFound):
		return ExitNotFound
	case errors.Is(err, ErrPermission), errors.Is(err, os.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrPathEscape),
		errors.Is(err, ErrInvalidPath),
		errors.Is(err, ErrMalformedTemplate),
		errors.Is(err, ErrUnresolvedVariable),
		errors.Is(err, ErrConflictKind):
		return ExitValidationError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitProviderError:
		return "Provider Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitConflict:
		return "Conflict"
	case ExitConfigError:
		return "Config Error"
	default:
		return "Unknown"
	}
}
