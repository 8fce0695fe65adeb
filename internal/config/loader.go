package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/templates"
)

// Environment variable prefix for n configuration.
const envPrefix = "N"

// EnvConfig overrides the config file path.
const EnvConfig = "N_CONFIG"

// keys lists every configuration key in file order.
var keys = []string{
	"default_template",
	"provider",
	"api_key",
	"model",
	"base_url",
	"storage_root",
	"timeout",
	"log.timestamps",
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Loader handles loading and merging configuration from the config file and
// the environment.
type Loader struct {
	fs   afero.Fs
	file *viper.Viper
	v    *viper.Viper
	path string
}

// NewLoader creates a configuration loader reading from fsys.
func NewLoader(fsys afero.Fs) *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		_ = v.BindEnv(key, EnvName(key))
	}

	file := viper.New()
	file.SetFs(fsys)

	return &Loader{fs: fsys, file: file, v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error. Environment variables take precedence over
// file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, oerrors.NewConfigError("cannot determine config file path", "", "", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, oerrors.NewConfigError("expanding config path", configFile, "", err)
	}
	l.path = expandedPath

	l.file.SetConfigFile(expandedPath)
	l.file.SetConfigType("yaml")

	if err := l.file.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewConfigError("reading config file", expandedPath,
				"Fix the YAML syntax or run 'n config init --force' to start over.", err)
		}
		// Config file not found is OK, we'll use defaults + env vars
	}

	if err := l.v.MergeConfigMap(l.file.AllSettings()); err != nil {
		return nil, oerrors.NewConfigError("merging config file", expandedPath, "", err)
	}

	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, oerrors.NewConfigError("unmarshaling config", expandedPath,
			"Durations need a unit, e.g. timeout: 30s.", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration, applies defaults and validates it.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	cfg, err = cfg.WithDefaults()
	if err != nil {
		return nil, oerrors.NewConfigError("resolving default paths", "", "", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolved reports where each configuration value came from. Call it after
// Load.
func (l *Loader) Resolved() []ResolvedValue {
	values := make([]ResolvedValue, 0, len(keys))
	for _, key := range keys {
		rv := ResolvedValue{
			Key:      key,
			Source:   SourceDefault,
			Shadowed: make(map[ConfigSource]any),
		}

		inFile := l.file.InConfig(key)
		if env, ok := os.LookupEnv(EnvName(key)); ok && env != "" {
			rv.Value = env
			rv.Source = SourceEnv
			if inFile {
				rv.Shadowed[SourceConfig] = l.file.Get(key)
			}
		} else if inFile {
			rv.Value = l.file.Get(key)
			rv.Source = SourceConfig
		} else {
			rv.Value = l.v.Get(key)
		}

		if key == "api_key" {
			rv.Value = redact(rv.Value)
			for src, val := range rv.Shadowed {
				rv.Shadowed[src] = redact(val)
			}
		}
		values = append(values, rv)
	}
	return values
}

// Path returns the config file path of the last Load.
func (l *Loader) Path() string {
	return l.path
}

// Validate checks the semantic constraints viper cannot express.
func Validate(cfg *Config) error {
	if cfg.DefaultTemplate != "" {
		if err := templates.ValidateName(cfg.DefaultTemplate); err != nil {
			return oerrors.NewConfigError(err.Error(), "default_template", "", nil)
		}
	}
	if cfg.Timeout < time.Second {
		return oerrors.NewConfigError(fmt.Sprintf("timeout %s is too short", cfg.Timeout), "timeout",
			"Durations need a unit, e.g. timeout: 30s.", nil)
	}
	return nil
}

// FileExists checks if the config file exists.
func FileExists(fsys afero.Fs, configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}
	return afero.Exists(fsys, expandedPath)
}

func redact(v any) any {
	if s, ok := v.(string); ok && s != "" {
		return "********"
	}
	return v
}
