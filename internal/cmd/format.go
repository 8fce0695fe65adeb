package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/output"
)

// addOutputFlag registers -o/--output on a listing command.
func addOutputFlag(c *cobra.Command, target *string) {
	c.Flags().StringVarP(target, "output", "o", "text", "Output format: text, json, yaml")
}

func parseOutputFlag(s string) (output.Format, error) {
	format, err := output.ParseFormat(s)
	if err != nil {
		return "", oerrors.NewValidationError(err.Error(), "--output", "", nil)
	}
	return format, nil
}

// writeStructured writes v as JSON or YAML.
func writeStructured(w io.Writer, format output.Format, v any) error {
	switch format {
	case output.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case output.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}
