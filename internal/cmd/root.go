// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nscaffold/n/internal/cmdutil"
	"github.com/nscaffold/n/internal/config"
	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/materialize"
	"github.com/nscaffold/n/internal/output"
	"github.com/nscaffold/n/internal/scaffold"
	"github.com/nscaffold/n/internal/templates"
)

// annotationConfigOptional marks commands that still run when the config
// file cannot be loaded, so a broken file can be inspected or replaced.
const annotationConfigOptional = "n/config-optional"

// NewRootCmd creates the root command for the n CLI. Running it with a single
// argument creates that file.
func NewRootCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		configFlag     string
		timestampsFlag bool
		executableFlag bool
		target         cmdutil.TargetFlags
	)

	rootCmd := &cobra.Command{
		Use:   "n [filename]",
		Short: "Create files, workspaces and project scaffolds",
		Long: `n creates files, directory workspaces and whole project scaffolds.

Content comes from templates (built-in or in the templates/ directory of the
storage root) or from a project layout suggested by an AI provider. Every
operation is checked before the first write; if a write fails, everything the
operation created is removed again.

Examples:
  # Create an empty file, or an executable one
  n notes.txt
  n -x run.sh

  # Create a workspace from a template
  n nw my-app --template go --var module=github.com/me/my-app

  # Ask the AI provider for a project layout
  n nwc a small go cli that prints the weather`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return initializeGlobals(c, cfg, configFlag, timestampsFlag)
		},
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.Help()
			}
			return runCreateFile(c, cfg, args[0], executableFlag, &target)
		},
	}

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return oerrors.NewValidationError(err.Error(), c.CommandPath(), "Run '"+c.CommandPath()+" --help' for usage.", nil)
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Path to config file (env: N_CONFIG)")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.Flags().BoolVarP(&executableFlag, "executable", "x", false, "Make the file executable")
	target.AddTo(rootCmd, materialize.FailOnConflict)

	rootCmd.AddCommand(
		NewNwCmd(cfg),
		NewNwcCmd(cfg),
		NewNewCmd(cfg),
		NewTemplatesCmd(cfg),
		NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(c *cobra.Command, cfg *config.GlobalConfig, configFlag string, timestampsFlag bool) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: configFlag})
	if err != nil {
		return oerrors.NewConfigError("cannot determine config file path", "", "Set N_CONFIG or pass --config.", err)
	}
	cfg.ConfigPath = pathResult.ConfigPath
	cfg.ConfigSource = pathResult.Source

	loader := config.NewLoader(cfg.FS())
	loaded, loadErr := loader.LoadWithDefaults(cfg.ConfigPath)

	var configTimestamps *bool
	if loaded != nil {
		configTimestamps = loaded.Log.Timestamps
	}
	timestamps := config.ResolveBool("log.timestamps", c.Flags().Changed("timestamps"), timestampsFlag, configTimestamps, true)
	output.SetupLogging(output.LogConfig{
		Verbose:    cfg.Verbose,
		Timestamps: output.BoolPtr(timestamps.Value.(bool)),
	})

	if loadErr != nil {
		if c.Annotations[annotationConfigOptional] == "" {
			return loadErr
		}
		output.Warn("ignoring unreadable config file", "path", cfg.ConfigPath, "error", loadErr)
		loaded = config.DefaultConfig()
		if withDefaults, err := loaded.WithDefaults(); err == nil {
			loaded = withDefaults
		}
	}
	cfg.Config = loaded

	if cfg.Verbose {
		shadowed := make(map[config.ConfigSource]any, len(pathResult.Shadowed))
		for src, v := range pathResult.Shadowed {
			shadowed[src] = v
		}
		values := []config.ResolvedValue{{
			Key:      "config",
			Value:    pathResult.ConfigPath,
			Source:   pathResult.Source,
			Shadowed: shadowed,
		}}
		if loadErr == nil {
			values = append(values, loader.Resolved()...)
		}
		values = append(values, timestamps)
		config.LogResolvedValues(values)
	}

	return nil
}

// newScaffolder builds the scaffolder for one command invocation.
func newScaffolder(cfg *config.GlobalConfig) *scaffold.Scaffolder {
	return scaffold.New(cfg.FS(), newRegistry(cfg))
}

func newRegistry(cfg *config.GlobalConfig) *templates.Registry {
	return templates.NewRegistry(cfg.FS(), cfg.Config.TemplateDir())
}

// configOptional returns annotations for commands that tolerate a broken
// config file.
func configOptional() map[string]string {
	return map[string]string{annotationConfigOptional: "true"}
}
