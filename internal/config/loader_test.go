package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	oerrors "github.com/nscaffold/n/internal/errors"
)

const configPath = "/home/dev/.config/n/config.yaml"

// isolateEnv clears every N_* override and points the XDG dirs at a temp dir.
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, key := range keys {
		t.Setenv(EnvName(key), "")
	}
	t.Setenv(EnvConfig, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	return home
}

func writeConfig(t *testing.T, fsys afero.Fs, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, configPath, []byte(content), 0o644))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := NewLoader(afero.NewMemMapFs()).Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileValues(t *testing.T) {
	isolateEnv(t)
	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, `
default_template: go
provider: openrouter
api_key: sk-file
model: meta/llama
storage_root: /srv/n
timeout: 90s
log:
  timestamps: false
`)

	cfg, err := NewLoader(fsys).Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "go", cfg.DefaultTemplate)
	assert.Equal(t, "openrouter", cfg.Provider)
	assert.Equal(t, "sk-file", cfg.APIKey)
	assert.Equal(t, "meta/llama", cfg.Model)
	assert.Equal(t, "/srv/n", cfg.StorageRoot)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.False(t, *cfg.Log.Timestamps)
	assert.Equal(t, "/srv/n/templates", cfg.TemplateDir())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, "provider: openai\napi_key: sk-file\ntimeout: 10s\n")

	t.Setenv("N_PROVIDER", "ollama")
	t.Setenv("N_API_KEY", "sk-env")
	t.Setenv("N_DEFAULT_TEMPLATE", "basic")

	loader := NewLoader(fsys)
	cfg, err := loader.Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, "basic", cfg.DefaultTemplate)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, configPath, loader.Path())

	byKey := map[string]ResolvedValue{}
	for _, rv := range loader.Resolved() {
		byKey[rv.Key] = rv
	}

	assert.Equal(t, SourceEnv, byKey["provider"].Source)
	assert.Equal(t, "ollama", byKey["provider"].Value)
	assert.Equal(t, "openai", byKey["provider"].Shadowed[SourceConfig])

	assert.Equal(t, SourceEnv, byKey["default_template"].Source)
	assert.Empty(t, byKey["default_template"].Shadowed)

	assert.Equal(t, SourceConfig, byKey["timeout"].Source)
	assert.Equal(t, SourceDefault, byKey["model"].Source)

	assert.Equal(t, "********", byKey["api_key"].Value, "api key must not be logged")
	assert.Equal(t, "********", byKey["api_key"].Shadowed[SourceConfig])
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "invalid yaml",
			content: "provider: [openai\n",
			wantMsg: "reading config file",
		},
		{
			name:    "bad duration",
			content: "timeout: soon\n",
			wantMsg: "unmarshaling config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			fsys := afero.NewMemMapFs()
			writeConfig(t, fsys, tt.content)

			_, err := NewLoader(fsys).Load(configPath)
			require.ErrorIs(t, err, oerrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), configPath)
			assert.Equal(t, oerrors.ExitConfigError, oerrors.ExitCodeFromError(err))
		})
	}
}

func TestLoad_DefaultPathFromEnv(t *testing.T) {
	isolateEnv(t)
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/n.yaml", []byte("provider: openai\n"), 0o644))
	t.Setenv(EnvConfig, "/etc/n.yaml")

	loader := NewLoader(fsys)
	cfg, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "/etc/n.yaml", loader.Path())
}

func TestLoadWithDefaults(t *testing.T) {
	home := isolateEnv(t)

	t.Run("storage root defaults to the data dir", func(t *testing.T) {
		cfg, err := NewLoader(afero.NewMemMapFs()).LoadWithDefaults(configPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "n"), cfg.StorageRoot)
		assert.Equal(t, filepath.Join(home, ".local", "share", "n", "templates"), cfg.TemplateDir())
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
	})

	t.Run("tilde is expanded", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeConfig(t, fsys, "storage_root: ~/scaffolds\n")

		cfg, err := NewLoader(fsys).LoadWithDefaults(configPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "scaffolds"), cfg.StorageRoot)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeConfig(t, fsys, "default_template: ../evil\n")

		_, err := NewLoader(fsys).LoadWithDefaults(configPath)
		require.ErrorIs(t, err, oerrors.ErrConfig)
		assert.Contains(t, err.Error(), "default_template")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Config{Timeout: DefaultTimeout}},
		{name: "template name", cfg: Config{DefaultTemplate: "go", Timeout: time.Minute}},
		{name: "template with separator", cfg: Config{DefaultTemplate: "a/b", Timeout: time.Minute}, wantErr: "invalid template name"},
		{name: "unitless timeout", cfg: Config{Timeout: 30}, wantErr: "too short"},
		{name: "negative timeout", cfg: Config{Timeout: -time.Second}, wantErr: "too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, oerrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigYAMLLoadsBack(t *testing.T) {
	isolateEnv(t)

	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 1m0s")
	assert.NotContains(t, string(data), "api_key")

	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, string(data))

	cfg, err := NewLoader(fsys).Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFileExists(t *testing.T) {
	fsys := afero.NewMemMapFs()

	ok, err := FileExists(fsys, configPath)
	require.NoError(t, err)
	assert.False(t, ok)

	writeConfig(t, fsys, "")
	ok, err = FileExists(fsys, configPath)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "N_DEFAULT_TEMPLATE", EnvName("default_template"))
	assert.Equal(t, "N_LOG_TIMESTAMPS", EnvName("log.timestamps"))
}
