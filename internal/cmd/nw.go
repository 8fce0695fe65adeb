package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nscaffold/n/internal/cmdutil"
	"github.com/nscaffold/n/internal/config"
	"github.com/nscaffold/n/internal/materialize"
	"github.com/nscaffold/n/internal/output"
	"github.com/nscaffold/n/internal/scaffold"
)

// NewNwCmd creates the nw command.
func NewNwCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		templateFlag string
		varFlags     []string
		target       cmdutil.TargetFlags
		dryRun       cmdutil.DryRunFlags
	)

	c := &cobra.Command{
		Use:   "nw <name>",
		Short: "Create a workspace directory, optionally from a template",
		Long: `Create a workspace directory named <name>.

With --template (or default_template in the config file) the template is
rendered into the directory. Every template receives the built-in variables
name, name_snake, name_kebab, name_camel and name_pascal; --var overrides them
and the template's own defaults.

Existing files are skipped unless --on-conflict=fail is given.

Examples:
  # Create an empty workspace
  n nw scratch

  # Render the built-in go template
  n nw my-app --template go --var module=github.com/me/my-app

  # Show what would be created
  n nw my-app --template go --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			policy, err := target.Policy(materialize.SkipExisting)
			if err != nil {
				return err
			}
			vars, err := scaffold.ParseVars(varFlags)
			if err != nil {
				return err
			}

			template := cfg.Config.DefaultTemplate
			if c.Flags().Changed("template") {
				template = templateFlag
			}
			if template == "" && len(vars) > 0 {
				output.Warn("--var has no effect without a template")
			}

			out, err := newScaffolder(cfg).CreateWorkspace(c.Context(), scaffold.WorkspaceRequest{
				Name:     args[0],
				Template: template,
				Vars:     vars,
				Dir:      target.Dir,
				Policy:   policy,
				DryRun:   dryRun.DryRun,
			})
			if err != nil {
				return err
			}

			cmdutil.WriteOutcome(c.OutOrStdout(), out)
			return nil
		},
	}

	c.Flags().StringVarP(&templateFlag, "template", "t", "",
		"Template to render (default: default_template from config, empty workspace if unset)")
	c.Flags().StringArrayVar(&varFlags, "var", nil,
		"Set a template variable as key=value (can be repeated)")
	target.AddTo(c, materialize.SkipExisting)
	dryRun.AddTo(c)

	return c
}
