package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nscaffold/n/internal/cmdutil"
	"github.com/nscaffold/n/internal/config"
	"github.com/nscaffold/n/internal/materialize"
	"github.com/nscaffold/n/internal/scaffold"
)

// NewNwcCmd creates the nwc command.
func NewNwcCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		nameFlag string
		target   cmdutil.TargetFlags
		dryRun   cmdutil.DryRunFlags
	)

	c := &cobra.Command{
		Use:   "nwc <prompt...>",
		Short: "Create a workspace from a layout suggested by the AI provider",
		Long: `Describe a project and let the configured AI provider design its layout.
The result is created in a new directory named after the project (or --name).

The provider is configured with provider, api_key, model and base_url in the
config file, or N_PROVIDER, N_API_KEY, N_MODEL and N_BASE_URL.

Examples:
  n nwc a go cli that prints the weather
  n nwc --name weather "a go cli that prints the weather" --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runPrompt(c, cfg, args, scaffold.PromptRequest{Workspace: true, Name: nameFlag}, &target, &dryRun)
		},
	}

	c.Flags().StringVar(&nameFlag, "name", "", "Workspace directory name (default: the name the provider chose)")
	target.AddTo(c, materialize.SkipExisting)
	dryRun.AddTo(c)

	return c
}

// NewNewCmd creates the new command.
func NewNewCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		target cmdutil.TargetFlags
		dryRun cmdutil.DryRunFlags
	)

	c := &cobra.Command{
		Use:   "new <prompt...>",
		Short: "Create a project layout suggested by the AI provider in place",
		Long: `Describe a project and let the configured AI provider design its layout.
Unlike nwc, the folders and files are created directly in the destination
directory (--dir, default the current directory).

Examples:
  mkdir weather && cd weather
  n new a go cli that prints the weather`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runPrompt(c, cfg, args, scaffold.PromptRequest{}, &target, &dryRun)
		},
	}

	target.AddTo(c, materialize.SkipExisting)
	dryRun.AddTo(c)

	return c
}

func runPrompt(c *cobra.Command, cfg *config.GlobalConfig, args []string, req scaffold.PromptRequest, target *cmdutil.TargetFlags, dryRun *cmdutil.DryRunFlags) error {
	policy, err := target.Policy(materialize.SkipExisting)
	if err != nil {
		return err
	}

	gen, err := cfg.NewGenerator()
	if err != nil {
		return err
	}

	req.Prompt = cmdutil.JoinPrompt(args)
	req.Dir = target.Dir
	req.Policy = policy
	req.DryRun = dryRun.DryRun

	out, err := newScaffolder(cfg).CreateFromPrompt(c.Context(), gen, req)
	if err != nil {
		return err
	}

	cmdutil.WriteOutcome(c.OutOrStdout(), out)
	return nil
}
