package materialize

import (
	"fmt"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/plan"
)

// FileExistsError reports a planned file whose target already exists.
type FileExistsError struct {
	// Path is the entry path relative to the root.
	Path string

	// Target is the absolute path.
	Target string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file exists: %s", e.Path)
}

func (e *FileExistsError) Unwrap() error {
	return oerrors.ErrFileExists
}

// ConflictKindError reports a path occupied by the wrong kind of entry.
type ConflictKindError struct {
	// Path is the conflicting path relative to the root.
	Path string

	// Want is the kind the plan needs at Path.
	Want plan.Kind

	// Found describes what occupies Path.
	Found string
}

func (e *ConflictKindError) Error() string {
	return fmt.Sprintf("%s: need a %s but found a %s", e.Path, e.Want, e.Found)
}

func (e *ConflictKindError) Unwrap() error {
	return oerrors.ErrConflictKind
}

// ApplyError reports a failure during the apply pass. Cause is the original
// failure; Rollback holds any errors hit while undoing created entries.
type ApplyError struct {
	// Entry is the plan entry being applied when the failure happened.
	Entry plan.Entry

	Cause    error
	Rollback error
}

func (e *ApplyError) Error() string {
	msg := fmt.Sprintf("applying %s: %v", e.Entry, e.Cause)
	if e.Rollback != nil {
		msg += fmt.Sprintf(" (rollback incomplete: %v)", e.Rollback)
	}
	return msg
}

func (e *ApplyError) Unwrap() []error {
	if e.Rollback != nil {
		return []error{e.Cause, e.Rollback}
	}
	return []error{e.Cause}
}
