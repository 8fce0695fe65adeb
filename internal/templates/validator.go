package templates

import (
	"fmt"
	"regexp"
	"strings"
)

// Variable names: a letter or underscore followed by letters, digits, '_', '.' or '-'.
var variableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

// Template names double as file names, so separators are not allowed.
var templateNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]*$`)

// IsValidVariableName reports whether name can appear inside a token.
func IsValidVariableName(name string) bool {
	return variableNameRegex.MatchString(name)
}

// ValidateVariableName checks a variable name declared by a template or flag.
func ValidateVariableName(name string) error {
	if name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	if !IsValidVariableName(name) {
		return fmt.Errorf("invalid variable name %q: must start with a letter or underscore and contain only letters, digits, '_', '.' and '-'", name)
	}
	return nil
}

// ValidateName checks a template name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if !templateNameRegex.MatchString(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid template name %q: must start with a letter or digit and contain only letters, digits, '_', '.' and '-'", name)
	}
	return nil
}
