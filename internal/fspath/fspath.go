// Package fspath turns requested relative paths into safe targets under a
// destination root. All checks are lexical; nothing here touches the filesystem.
package fspath

import (
	"fmt"
	"path/filepath"
	"strings"

	oerrors "github.com/nscaffold/n/internal/errors"
)

// EscapeError reports a requested path that cannot be placed under the root.
type EscapeError struct {
	// Path is the path as requested.
	Path string

	// Reason describes why the path was rejected.
	Reason string

	kind error
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("%s: %q %s", e.kind, e.Path, e.Reason)
}

// Unwrap returns ErrPathEscape or ErrInvalidPath.
func (e *EscapeError) Unwrap() error {
	return e.kind
}

func escape(path, reason string) error {
	return &EscapeError{Path: path, Reason: reason, kind: oerrors.ErrPathEscape}
}

func invalid(path, reason string) error {
	return &EscapeError{Path: path, Reason: reason, kind: oerrors.ErrInvalidPath}
}

// Clean normalizes a relative path, collapsing "." and ".." elements.
// The result is always a strict descendant of an arbitrary root.
func Clean(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", invalid(rel, "is empty")
	}
	if strings.ContainsRune(rel, 0) {
		return "", invalid(rel, "contains a NUL byte")
	}
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" || strings.HasPrefix(rel, "/") {
		return "", escape(rel, "is absolute")
	}

	cleaned := filepath.Clean(rel)
	if cleaned == "." {
		return "", invalid(rel, "names the destination root itself")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", escape(rel, "resolves outside the destination root")
	}

	return cleaned, nil
}

// Resolve joins rel onto root and returns the absolute target.
// It fails with ErrPathEscape when the target would not be a descendant of root.
func Resolve(root, rel string) (string, error) {
	cleaned, err := Clean(rel)
	if err != nil {
		return "", err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}

	target := filepath.Join(absRoot, cleaned)
	if !Within(absRoot, target) {
		return "", escape(rel, "resolves outside the destination root")
	}

	return target, nil
}

// Within reports whether target is a strict descendant of root.
// Both paths are compared in cleaned form.
func Within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Ancestors returns the directories between root (exclusive) and target
// (exclusive), outermost first.
func Ancestors(root, target string) []string {
	root = filepath.Clean(root)
	var dirs []string
	for dir := filepath.Dir(target); dir != root && Within(root, dir); dir = filepath.Dir(dir) {
		dirs = append(dirs, dir)
	}
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
