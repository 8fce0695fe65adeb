package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nscaffold/n/internal/config"
	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/output"
)

const configHeader = `# n configuration
#
# Every key can be overridden with an environment variable: N_ followed by
# the upper-cased key, e.g. N_PROVIDER or N_API_KEY.
#
# provider: openai, openrouter, ollama, or any name together with base_url
# for an OpenAI-compatible endpoint.

`

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	c.AddCommand(newConfigInitCmd(cfg), newConfigPathCmd(cfg))
	return c
}

func newConfigInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: `Create a configuration file with default values.

The file is created at $XDG_CONFIG_HOME/n/config.yaml by default.
Use --config or N_CONFIG to choose a different location.`,
		Args:        cobra.NoArgs,
		Annotations: configOptional(),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")
	return c
}

func runConfigInit(c *cobra.Command, cfg *config.GlobalConfig, force bool) error {
	fsys := cfg.FS()

	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return oerrors.NewConfigError("expanding config path", cfg.ConfigPath, "", err)
	}

	exists, err := config.FileExists(fsys, path)
	if err != nil {
		return oerrors.WrapIO(err, "stat", path)
	}
	if exists && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite): %w", path, oerrors.ErrFileExists)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return oerrors.WrapIO(err, "mkdir", filepath.Dir(path))
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := afero.WriteFile(fsys, path, data, 0o600); err != nil {
		return oerrors.WrapIO(err, "write", path)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+path))
	return nil
}

func newConfigPathCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file path",
		Long:        `Print the configuration file path resolved from --config, N_CONFIG or the default location.`,
		Args:        cobra.NoArgs,
		Annotations: configOptional(),
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintln(c.OutOrStdout(), cfg.ConfigPath)

			exists, err := config.FileExists(cfg.FS(), cfg.ConfigPath)
			if err == nil && !exists {
				output.Info("config file does not exist yet, run 'n config init' to create it", "source", cfg.ConfigSource)
			} else {
				output.Debug("config path resolved", "source", cfg.ConfigSource)
			}
			return nil
		},
	}
}
