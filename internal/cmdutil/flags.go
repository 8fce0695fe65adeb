// Package cmdutil provides shared command utilities: flag groups used by
// several commands and the rendering of scaffolding results and errors.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nscaffold/n/internal/materialize"
)

// TargetFlags holds flags common to every command that writes to disk.
type TargetFlags struct {
	Dir        string
	OnConflict string
}

// AddTo registers the target flags on the given cobra command. def is the
// conflict policy used when --on-conflict is not given.
func (f *TargetFlags) AddTo(cmd *cobra.Command, def materialize.Policy) {
	cmd.Flags().StringVarP(&f.Dir, "dir", "C", "",
		"Destination directory (default: current directory)")
	cmd.Flags().StringVar(&f.OnConflict, "on-conflict", "",
		fmt.Sprintf("What to do when a file already exists: fail or skip (default %q)", def))
}

// Policy returns the conflict policy selected by --on-conflict.
func (f *TargetFlags) Policy(def materialize.Policy) (materialize.Policy, error) {
	return materialize.ParsePolicy(f.OnConflict, def)
}

// DryRunFlags holds the --dry-run flag.
type DryRunFlags struct {
	DryRun bool
}

// AddTo registers the dry-run flag on the given cobra command.
func (f *DryRunFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false,
		"Check the plan and print what would be created without writing anything")
}

// JoinPrompt joins positional arguments into one prompt, so quoting is
// optional: n new a go cli with a Makefile.
func JoinPrompt(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
