package provider

import (
	"fmt"

	oerrors "github.com/nscaffold/n/internal/errors"
)

// Error reports a failed or unusable provider response.
type Error struct {
	Provider string

	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int

	// RequestID is the X-Client-Request-Id sent with the request.
	RequestID string

	Message string
	Cause   error

	// transient marks failures worth retrying.
	transient bool
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{oerrors.ErrProvider, e.Cause}
	}
	return []error{oerrors.ErrProvider}
}

// Transient reports whether retrying the request may succeed.
func (e *Error) Transient() bool {
	return e.transient
}
