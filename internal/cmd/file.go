package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nscaffold/n/internal/cmdutil"
	"github.com/nscaffold/n/internal/config"
	"github.com/nscaffold/n/internal/materialize"
	"github.com/nscaffold/n/internal/scaffold"
)

func runCreateFile(c *cobra.Command, cfg *config.GlobalConfig, name string, executable bool, target *cmdutil.TargetFlags) error {
	policy, err := target.Policy(materialize.FailOnConflict)
	if err != nil {
		return err
	}

	out, err := newScaffolder(cfg).CreateFile(c.Context(), scaffold.FileRequest{
		Name:       name,
		Executable: executable,
		Dir:        target.Dir,
		Policy:     policy,
	})
	if err != nil {
		return err
	}

	cmdutil.WriteOutcome(c.OutOrStdout(), out)
	return nil
}
