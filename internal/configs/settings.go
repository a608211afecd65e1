package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultStoreDir is the store directory name under the home directory.
	DefaultStoreDir  = ".oxio.cache"
	DefaultBranch    = "main"
	DefaultRemote    = "origin"
	DefaultThreshold = 2
)

// Settings holds the resolved configuration for a single invocation.
type Settings struct {
	// StorePath is the root directory of the item store.
	StorePath string
	// SSHKeyPath is the private key used for ssh remotes.
	SSHKeyPath string
	Branch     string
	Remote     string
	// Threshold is the maximum edit distance accepted by fuzzy lookups.
	Threshold int
	// AuditPath is the JSON-lines audit log file.
	AuditPath string
	// ConfigPath is the file the settings were read from, present or not.
	ConfigPath string
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		StorePath:  filepath.Join(homeDir, DefaultStoreDir),
		SSHKeyPath: filepath.Join(homeDir, ".ssh", "id_rsa"),
		Branch:     DefaultBranch,
		Remote:     DefaultRemote,
		Threshold:  DefaultThreshold,
		AuditPath:  filepath.Join(dataDir, "oxio", "audit.jsonl"),
		ConfigPath: filepath.Join(configDir, "oxio", "config.toml"),
	}, nil
}

// LoadSettings resolves the settings from the defaults and the config file
// at configPath. An empty configPath selects the default location.
func LoadSettings(configPath string) (*Settings, error) {
	settings, err := DefaultSettings()
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		settings.ConfigPath = configPath
	}

	cfg, err := LoadFileConfig(settings.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
