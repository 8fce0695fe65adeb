package templates

import (
	"fmt"
	"strings"

	oerrors "github.com/nscaffold/n/internal/errors"
)

// UnresolvedVariableError reports a token whose name is not bound.
type UnresolvedVariableError struct {
	Template  string
	Name      string
	FileIndex int

	// Field is "path" or "content".
	Field string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("template %q: unresolved variable %q in files[%d].%s",
		e.Template, e.Name, e.FileIndex, e.Field)
}

func (e *UnresolvedVariableError) Unwrap() error {
	return oerrors.ErrUnresolvedVariable
}

// MalformedError reports an unparseable template definition or token.
type MalformedError struct {
	// Location is the definition file path or "<template>/files[i].field".
	Location string

	Reason string
	Cause  error
}

func (e *MalformedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed template %s: %s: %v", e.Location, e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed template %s: %s", e.Location, e.Reason)
}

func (e *MalformedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{oerrors.ErrMalformedTemplate, e.Cause}
	}
	return []error{oerrors.ErrMalformedTemplate}
}

// NotFoundError reports a template name with no definition.
type NotFoundError struct {
	Name     string
	Searched string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "template %q not found", e.Name)
	if e.Searched != "" {
		fmt.Fprintf(&b, " in %s or built-in templates", e.Searched)
	}
	return b.String()
}

func (e *NotFoundError) Unwrap() error {
	return oerrors.ErrTemplateNotFound
}
