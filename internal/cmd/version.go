package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nscaffold/n/internal/config"
	"github.com/nscaffold/n/internal/output"
	"github.com/nscaffold/n/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *config.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show n version information.

Displays the version, commit and build date, and the Go toolchain and
platform the binary was built for.`,
		Args:        cobra.NoArgs,
		Annotations: configOptional(),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := parseOutputFlag(outputFlag)
			if err != nil {
				return err
			}

			info := version.Get()
			if format != output.FormatText {
				return writeStructured(c.OutOrStdout(), format, info)
			}
			fmt.Fprintln(c.OutOrStdout(), info.String())
			return nil
		},
	}

	addOutputFlag(c, &outputFlag)
	return c
}
