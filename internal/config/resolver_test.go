package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/nscaffold/n/internal/errors"
	"github.com/nscaffold/n/internal/provider"
	"github.com/nscaffold/n/internal/structure"
)

func TestResolveConfigPath(t *testing.T) {
	home := isolateEnv(t)
	defaultPath := filepath.Join(home, ".config", "n", "config.yaml")

	tests := []struct {
		name         string
		flag         string
		env          string
		wantPath     string
		wantSource   ConfigSource
		wantShadowed map[ConfigSource]string
	}{
		{
			name:         "default",
			wantPath:     defaultPath,
			wantSource:   SourceDefault,
			wantShadowed: map[ConfigSource]string{},
		},
		{
			name:         "env",
			env:          "/env/config.yaml",
			wantPath:     "/env/config.yaml",
			wantSource:   SourceEnv,
			wantShadowed: map[ConfigSource]string{SourceDefault: defaultPath},
		},
		{
			name:       "flag beats env",
			flag:       "/flag/config.yaml",
			env:        "/env/config.yaml",
			wantPath:   "/flag/config.yaml",
			wantSource: SourceFlag,
			wantShadowed: map[ConfigSource]string{
				SourceEnv:     "/env/config.yaml",
				SourceDefault: defaultPath,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfig, tt.env)

			result, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: tt.flag})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, result.ConfigPath)
			assert.Equal(t, tt.wantSource, result.Source)
			assert.Equal(t, tt.wantShadowed, result.Shadowed)
		})
	}
}

func TestResolveBool(t *testing.T) {
	off := false

	tests := []struct {
		name        string
		flagChanged bool
		flagValue   bool
		configValue *bool
		want        bool
		wantSource  ConfigSource
	}{
		{name: "default", want: true, wantSource: SourceDefault},
		{name: "config", configValue: &off, want: false, wantSource: SourceConfig},
		{name: "flag beats config", flagChanged: true, flagValue: true, configValue: &off, want: true, wantSource: SourceFlag},
		{name: "unchanged flag is ignored", flagValue: false, want: true, wantSource: SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv := ResolveBool("log.timestamps", tt.flagChanged, tt.flagValue, tt.configValue, true)
			assert.Equal(t, tt.want, rv.Value)
			assert.Equal(t, tt.wantSource, rv.Source)
			if tt.wantSource == SourceFlag && tt.configValue != nil {
				assert.Equal(t, *tt.configValue, rv.Shadowed[SourceConfig])
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: ""},
		{input: "/absolute/path", expected: "/absolute/path"},
		{input: "relative/path", expected: "relative/path"},
		{input: "~", expected: homeDir},
		{input: "~/.config/n", expected: filepath.Join(homeDir, ".config", "n")},
		{input: "~username/file", expected: "~username/file"},
		{input: "/path/~/file", expected: "/path/~/file"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	home := isolateEnv(t)

	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "n", "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(home, ".local", "share", "n"), paths.DataDir)

	t.Setenv("XDG_DATA_HOME", "")
	paths, err = DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "n"), paths.DataDir, "falls back to ~/.local/share")
}

func TestGlobalConfig_NewGenerator(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		fixed := provider.GeneratorFunc(func(ctx context.Context, prompt string) (*structure.ProjectStructure, error) {
			return &structure.ProjectStructure{Name: "fixed"}, nil
		})
		g := &GlobalConfig{Config: DefaultConfig(), Generator: fixed}

		gen, err := g.NewGenerator()
		require.NoError(t, err)
		s, err := gen.Generate(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, "fixed", s.Name)
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		g := &GlobalConfig{Config: DefaultConfig()}
		_, err := g.NewGenerator()
		assert.ErrorIs(t, err, oerrors.ErrConfig)
	})

	t.Run("configured provider", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "ollama"
		g := &GlobalConfig{Config: cfg}
		gen, err := g.NewGenerator()
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})
}

func TestGlobalConfig_FSDefaultsToOS(t *testing.T) {
	g := &GlobalConfig{}
	assert.NotNil(t, g.FS())
	assert.Same(t, g.FS(), g.FS())
}
