// Package config provides configuration loading and management.
package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/nscaffold/n/internal/provider"
)

// DefaultTimeout bounds a single AI provider request.
const DefaultTimeout = 60 * time.Second

// Config is the loaded configuration. It is read-only once loaded.
type Config struct {
	// DefaultTemplate is used by "n nw" when --template is not given.
	// Empty means an empty workspace directory.
	DefaultTemplate string `mapstructure:"default_template" yaml:"default_template"`

	// Provider selects the AI provider, e.g. "openai".
	Provider string `mapstructure:"provider" yaml:"provider"`

	APIKey  string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	Model   string `mapstructure:"model" yaml:"model,omitempty"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`

	// StorageRoot holds the templates/ directory.
	StorageRoot string `mapstructure:"storage_root" yaml:"storage_root"`

	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Timestamps toggles timestamps on log lines. Nil means the default (on).
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout: DefaultTimeout,
	}
}

// MarshalYAML renders Timeout as a duration string.
func (c Config) MarshalYAML() (any, error) {
	return struct {
		DefaultTemplate string    `yaml:"default_template"`
		Provider        string    `yaml:"provider"`
		APIKey          string    `yaml:"api_key,omitempty"`
		Model           string    `yaml:"model,omitempty"`
		BaseURL         string    `yaml:"base_url,omitempty"`
		StorageRoot     string    `yaml:"storage_root"`
		Timeout         string    `yaml:"timeout"`
		Log             LogConfig `yaml:"log"`
	}{
		DefaultTemplate: c.DefaultTemplate,
		Provider:        c.Provider,
		APIKey:          c.APIKey,
		Model:           c.Model,
		BaseURL:         c.BaseURL,
		StorageRoot:     c.StorageRoot,
		Timeout:         c.Timeout.String(),
		Log:             c.Log,
	}, nil
}

var _ yaml.Marshaler = Config{}

// WithDefaults fills unset fields and expands ~ in StorageRoot.
func (c *Config) WithDefaults() (*Config, error) {
	out := *c
	if out.Timeout == 0 {
		out.Timeout = DefaultTimeout
	}
	if out.StorageRoot == "" {
		paths, err := DefaultPaths()
		if err != nil {
			return nil, err
		}
		out.StorageRoot = paths.DataDir
	}
	root, err := ExpandPath(out.StorageRoot)
	if err != nil {
		return nil, err
	}
	out.StorageRoot = root
	return &out, nil
}

// TemplateDir returns the user template directory.
func (c *Config) TemplateDir() string {
	return filepath.Join(c.StorageRoot, "templates")
}

// ProviderOptions returns the AI provider settings.
func (c *Config) ProviderOptions() provider.Options {
	return provider.Options{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		Model:    c.Model,
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout,
	}
}

// GlobalConfig is the state shared by all commands of one invocation.
type GlobalConfig struct {
	// Config is the loaded configuration, set in PersistentPreRunE.
	Config *Config

	// ConfigPath is the resolved config file path.
	ConfigPath string

	// ConfigSource records where ConfigPath came from.
	ConfigSource ConfigSource

	// Verbose enables debug logging.
	Verbose bool

	// Fs is the filesystem commands write to. Nil means the OS filesystem.
	Fs afero.Fs

	// Generator replaces the configured AI provider when set.
	Generator provider.Generator
}

// FS returns the filesystem commands operate on.
func (g *GlobalConfig) FS() afero.Fs {
	if g.Fs == nil {
		g.Fs = afero.NewOsFs()
	}
	return g.Fs
}

// NewGenerator returns the AI provider for this invocation.
func (g *GlobalConfig) NewGenerator() (provider.Generator, error) {
	if g.Generator != nil {
		return g.Generator, nil
	}
	cfg := g.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return provider.New(cfg.ProviderOptions())
}
