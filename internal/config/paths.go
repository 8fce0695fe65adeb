package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for n.
type Paths struct {
	// ConfigFile is the path to the config file ($XDG_CONFIG_HOME/n/config.yaml).
	ConfigFile string

	// DataDir is the default storage root ($XDG_DATA_HOME/n).
	DataDir string
}

// DefaultPaths returns the default paths for n.
func DefaultPaths() (*Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	return &Paths{
		ConfigFile: filepath.Join(configDir, "n", "config.yaml"),
		DataDir:    filepath.Join(dataHome, "n"),
	}, nil
}

// GetConfigFile returns the config file path.
// If N_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
