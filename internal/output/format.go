package output

import (
	"fmt"
	"strings"
)

// Format specifies how listing commands print their results.
type Format string

const (
	// FormatText prints human-readable tables and trees.
	FormatText Format = "text"

	// FormatJSON prints JSON.
	FormatJSON Format = "json"

	// FormatYAML prints YAML.
	FormatYAML Format = "yaml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseFormat parses a --output flag value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "table", "tree":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// ValidFormats returns the accepted --output values.
func ValidFormats() []string {
	return []string{"text", "json", "yaml"}
}
