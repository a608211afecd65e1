package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", "")
	return home
}

func TestDefaultSettings(t *testing.T) {
	home := setHome(t)

	s, err := DefaultSettings()
	if err != nil {
		t.Fatalf("DefaultSettings failed: %v", err)
	}

	expected := Settings{
		StorePath:  filepath.Join(home, ".oxio.cache"),
		SSHKeyPath: filepath.Join(home, ".ssh", "id_rsa"),
		Branch:     "main",
		Remote:     "origin",
		Threshold:  2,
		AuditPath:  filepath.Join(home, ".local", "share", "oxio", "audit.jsonl"),
		ConfigPath: filepath.Join(home, ".config", "oxio", "config.toml"),
	}
	if *s != expected {
		t.Errorf("Expected %+v, got %+v", expected, *s)
	}
}

func TestLoadSettingsWithoutFile(t *testing.T) {
	home := setHome(t)

	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.StorePath != filepath.Join(home, ".oxio.cache") {
		t.Errorf("Expected default store path, got %q", s.StorePath)
	}
}

func TestLoadSettingsOverlaysFile(t *testing.T) {
	home := setHome(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `[store]
path = "~/secrets"

[sync]
ssh_key = "/keys/deploy"
remote = "backup"

[lookup]
threshold = 0
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(configPath)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if s.StorePath != filepath.Join(home, "secrets") {
		t.Errorf("Expected expanded store path, got %q", s.StorePath)
	}
	if s.SSHKeyPath != "/keys/deploy" {
		t.Errorf("Expected ssh key /keys/deploy, got %q", s.SSHKeyPath)
	}
	if s.Remote != "backup" {
		t.Errorf("Expected remote backup, got %q", s.Remote)
	}
	if s.Branch != "main" {
		t.Errorf("Expected default branch to survive, got %q", s.Branch)
	}
	if s.Threshold != 0 {
		t.Errorf("Expected explicit threshold 0, got %d", s.Threshold)
	}
	if s.ConfigPath != configPath {
		t.Errorf("Expected config path %q, got %q", configPath, s.ConfigPath)
	}
}

func TestLoadSettingsRejectsNegativeThreshold(t *testing.T) {
	setHome(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[lookup]\nthreshold = -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSettings(configPath); err == nil {
		t.Fatal("Expected error for negative threshold, got nil")
	}
}

func TestSaveFileConfigRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "oxio", "config.toml")
	cfg := &FileConfig{Audit: AuditConfig{Path: "/var/log/oxio.jsonl"}}

	if err := SaveFileConfig(configPath, cfg); err != nil {
		t.Fatalf("SaveFileConfig failed: %v", err)
	}
	loaded, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig failed: %v", err)
	}
	if loaded.Audit.Path != cfg.Audit.Path {
		t.Errorf("Expected audit path %q, got %q", cfg.Audit.Path, loaded.Audit.Path)
	}
	if loaded.Lookup.Threshold != nil {
		t.Errorf("Expected unset threshold, got %d", *loaded.Lookup.Threshold)
	}
}
