package configs

import (
	"fmt"
	"os"
)

// FileConfig mirrors config.toml. Zero values leave the defaults in place.
type FileConfig struct {
	Store  StoreConfig  `toml:"store"`
	Sync   SyncConfig   `toml:"sync"`
	Lookup LookupConfig `toml:"lookup"`
	Audit  AuditConfig  `toml:"audit"`
}

type StoreConfig struct {
	Path string `toml:"path,omitempty"`
}

type SyncConfig struct {
	SSHKey string `toml:"ssh_key,omitempty"`
	Branch string `toml:"branch,omitempty"`
	Remote string `toml:"remote,omitempty"`
}

type LookupConfig struct {
	// Threshold is nil when unset. 0 accepts exact matches only.
	Threshold *int `toml:"threshold,omitempty"`
}

type AuditConfig struct {
	Path string `toml:"path,omitempty"`
}

// LoadFileConfig reads the config file at path. A missing file yields an
// empty config.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if err := LoadTOML(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveFileConfig writes cfg to path.
func SaveFileConfig(path string, cfg *FileConfig) error {
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}
	return nil
}

// Apply overlays the values set in c onto s.
func (c *FileConfig) Apply(s *Settings) error {
	var err error
	if c.Store.Path != "" {
		if s.StorePath, err = expandHome(c.Store.Path); err != nil {
			return err
		}
	}
	if c.Sync.SSHKey != "" {
		if s.SSHKeyPath, err = expandHome(c.Sync.SSHKey); err != nil {
			return err
		}
	}
	if c.Sync.Branch != "" {
		s.Branch = c.Sync.Branch
	}
	if c.Sync.Remote != "" {
		s.Remote = c.Sync.Remote
	}
	if c.Lookup.Threshold != nil {
		if *c.Lookup.Threshold < 0 {
			return fmt.Errorf("invalid lookup threshold %d: must not be negative", *c.Lookup.Threshold)
		}
		s.Threshold = *c.Lookup.Threshold
	}
	if c.Audit.Path != "" {
		if s.AuditPath, err = expandHome(c.Audit.Path); err != nil {
			return err
		}
	}
	return nil
}
