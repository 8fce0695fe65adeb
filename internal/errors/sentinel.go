package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates input failed validation before any write.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrFileExists indicates a target file already exists.
	ErrFileExists = errors.New("file exists")

	// ErrConflictKind indicates a path is occupied by an entry of the wrong kind
	// (a file where a directory is needed or the other way round).
	ErrConflictKind = errors.New("conflicting entry kind")

	// ErrTemplateNotFound indicates no template with the requested name exists.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMalformedTemplate indicates a template definition or token could not be parsed.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrUnresolvedVariable indicates a token references an unbound variable.
	ErrUnresolvedVariable = errors.New("unresolved variable")

	// ErrPathEscape indicates a path resolves outside the destination root.
	ErrPathEscape = errors.New("path escapes destination root")

	// ErrInvalidPath indicates a path is empty, contains NUL bytes or names the root itself.
	ErrInvalidPath = errors.New("invalid path")

	// ErrProvider indicates the AI provider failed or returned unusable output.
	ErrProvider = errors.New("provider error")

	// ErrIO wraps underlying filesystem failures.
	ErrIO = errors.New("io failure")

	// ErrConfig indicates configuration could not be loaded or is invalid.
	ErrConfig = errors.New("config error")
)
