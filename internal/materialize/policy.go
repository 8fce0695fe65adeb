package materialize

import (
	"fmt"
	"strings"

	oerrors "github.com/nscaffold/n/internal/errors"
)

// Policy decides what happens when a planned file already exists.
type Policy int

const (
	// FailOnConflict aborts before any write when a planned file exists.
	FailOnConflict Policy = iota

	// SkipExisting leaves existing files untouched and continues.
	SkipExisting
)

// String returns the flag value for the policy.
func (p Policy) String() string {
	switch p {
	case FailOnConflict:
		return "fail"
	case SkipExisting:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses an --on-conflict value. Empty returns def.
func ParsePolicy(s string, def Policy) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "fail":
		return FailOnConflict, nil
	case "skip":
		return SkipExisting, nil
	default:
		return def, oerrors.NewValidationError(
			fmt.Sprintf("unknown conflict policy %q", s), "--on-conflict",
			"Use \"fail\" or \"skip\".", nil)
	}
}
