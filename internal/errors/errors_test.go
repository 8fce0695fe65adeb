//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrValidation, ErrPermission, ErrFileExists, ErrConflictKind,
		ErrTemplateNotFound, ErrMalformedTemplate, ErrUnresolvedVariable,
		ErrPathEscape, ErrInvalidPath, ErrProvider, ErrIO, ErrConfig,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "path escapes destination root",
		Location: "../../etc/passwd",
		Context:  map[string]string{"Template": "go"},
		Hint:     "Use a path relative to the workspace",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: ../../etc/passwd")
	assert.Contains(t, output, "Template: go")
	assert.Contains(t, output, "path escapes destination root")
	assert.Contains(t, output, "Hint: Use a path relative to the workspace")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrPathEscape,
	}

	assert.True(t, errors.Is(detail, ErrPathEscape))
	assert.Equal(t, ErrPathEscape, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	t.Run("defaults cause to ErrValidation", func(t *testing.T) {
		err := NewValidationError("bad input", "x.txt", "", nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("keeps explicit cause", func(t *testing.T) {
		err := NewValidationError("bad input", "x.txt", "fix it", ErrPathEscape)
		require.ErrorIs(t, err, ErrPathEscape)

		var detail *DetailError
		require.True(t, errors.As(err, &detail))
		assert.Equal(t, "x.txt", detail.Location)
		assert.Equal(t, "fix it", detail.Hint)
	})
}

func TestWrapIO(t *testing.T) {
	err := WrapIO(fs.ErrPermission, "create", "/tmp/x")

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "create /tmp/x")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"io", WrapIO(errors.New("disk full"), "write", "a"), ExitGeneralError},
		{"path escape", fmt.Errorf("x: %w", ErrPathEscape), ExitValidationError},
		{"unresolved", fmt.Errorf("x: %w", ErrUnresolvedVariable), ExitValidationError},
		{"malformed", fmt.Errorf("x: %w", ErrMalformedTemplate), ExitValidationError},
		{"conflict kind", fmt.Errorf("x: %w", ErrConflictKind), ExitValidationError},
		{"file exists", fmt.Errorf("x: %w", ErrFileExists), ExitConflict},
		{"template not found", fmt.Errorf("x: %w", ErrTemplateNotFound), ExitNotFound},
		{"provider", NewProviderError("down", nil, "", nil), ExitProviderError},
		{"config", NewConfigError("bad yaml", "", "", nil), ExitConfigError},
		{"os permission", WrapIO(fs.ErrPermission, "mkdir", "a"), ExitPermissionDenied},
		{"explicit exit error", &ExitError{Err: errors.New("x"), Code: 42}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestNewExitError(t *testing.T) {
	err := NewExitError(fmt.Errorf("x: %w", ErrFileExists))

	assert.Equal(t, ExitConflict, err.Code)
	assert.ErrorIs(t, err, ErrFileExists)
	assert.Equal(t, "Conflict", ExitCodeName(err.Code))
}

func TestNewProviderError_KeepsSentinelWithCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewProviderError("request failed", map[string]string{"provider": "openai"}, "", cause)

	assert.ErrorIs(t, err, ErrProvider)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "provider: openai")
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("bad timeout", "/etc/n/config.yaml", "Use a duration like 30s.", nil)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "/etc/n/config.yaml")
	assert.Equal(t, ExitConfigError, ExitCodeFromError(err))

	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err = NewConfigError("reading config file", "", "", cause)
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, cause)
}

func TestDetailErrorContextOrder(t *testing.T) {
	detail := &DetailError{
		Type:    "provider request failed",
		Message: "unexpected status",
		Context: map[string]string{"Status": "401", "Model": "gpt-4o-mini", "Provider": "openai"},
	}

	out := detail.Error()
	model := strings.Index(out, "Model:")
	provider := strings.Index(out, "Provider:")
	status := strings.Index(out, "Status:")
	assert.True(t, model < provider && provider < status, "context keys are sorted:\n%s", out)
}
