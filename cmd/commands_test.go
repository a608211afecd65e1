package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heyvito/oxio/internal/audit"
)

func TestDoctorWithoutStore(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, code := runCLI(t, "doctor")
	if code != 1 {
		t.Errorf("expected exit code 1 for a missing store, got %d", code)
	}
	if !strings.Contains(stdout, "No local store at") {
		t.Errorf("expected missing store warning, got %q", stdout)
	}
	if !strings.Contains(stdout, "oxio sync init URL") {
		t.Errorf("expected a suggestion, got %q", stdout)
	}
}

func TestDoctorUnsyncedStore(t *testing.T) {
	setupTestEnvironment(t)
	mustRun(t, "wifi", "home", "hunter2")

	stdout, _, code := runCLI(t, "doctor")
	if code != 1 {
		t.Errorf("expected exit code 1 for an unsynced store, got %d", code)
	}
	for _, want := range []string{"Index lists all 1 item(s)", "All 1 item file(s) are readable", "Store is not synced", "Summary: 3 passed, 1 warning(s)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestDoctorCorruptItem(t *testing.T) {
	storePath := setupTestEnvironment(t)
	mustRun(t, "wifi", "home", "hunter2")

	entries, err := os.ReadDir(storePath)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			if err := os.WriteFile(filepath.Join(storePath, e.Name()), []byte("wifi\x00home\x00tampered\x00"), 0600); err != nil {
				t.Fatalf("Failed to tamper with item: %v", err)
			}
		}
	}

	stdout, _, code := runCLI(t, "doctor", "--json")
	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}

	var result struct {
		Checks []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"checks"`
		Summary struct {
			Errors int `json:"errors"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Failed to parse doctor JSON: %v\n%s", err, stdout)
	}
	if result.Summary.Errors != 1 {
		t.Errorf("expected 1 error, got %d", result.Summary.Errors)
	}
	for _, c := range result.Checks {
		if c.Name == "Items" && c.Status != "error" {
			t.Errorf("expected Items check to fail, got %s", c.Status)
		}
	}
}

func TestLog(t *testing.T) {
	setupTestEnvironment(t)

	if out := mustRun(t, "log"); out != "No audit log entries found.\n" {
		t.Errorf("unexpected output for an empty log: %q", out)
	}

	mustRun(t, "wifi", "home", "hunter2")
	mustRun(t, "keys", "ssh", "x")
	mustRun(t, "rm-item", "wifi", "home")

	out := mustRun(t, "log", "--oneline")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 entries, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "set wifi/home") {
		t.Errorf("unexpected first entry: %q", lines[0])
	}
	if !strings.Contains(lines[2], "rm-item wifi/home") {
		t.Errorf("unexpected last entry: %q", lines[2])
	}
	if strings.Contains(out, "hunter2") {
		t.Errorf("values must never reach the audit log")
	}

	out = mustRun(t, "log", "--json", "--operation", "set", "--group", "keys")
	var entries []audit.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("Failed to parse log JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Name != "ssh" {
		t.Errorf("unexpected filtered entries: %+v", entries)
	}

	out = mustRun(t, "log", "--oneline", "--reverse", "-n", "1")
	if !strings.Contains(out, "rm-item") || strings.Count(out, "\n") != 1 {
		t.Errorf("expected only the most recent entry, got %q", out)
	}

	if out := mustRun(t, "log", "--operation", "sync"); out != "No audit log entries found matching the filters.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	if _, _, code := runCLI(t, "log", "--since", "yesterday"); code != 1 {
		t.Errorf("expected an invalid date to fail")
	}
}

func TestSyncWithoutStore(t *testing.T) {
	setupTestEnvironment(t)

	_, stderr, code := runCLI(t, "sync")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stderr == "" {
		t.Errorf("expected an error message")
	}
}

func TestSyncStatus(t *testing.T) {
	storePath := setupTestEnvironment(t)

	if out := mustRun(t, "sync", "status"); !strings.Contains(out, "There is no local store at "+storePath) {
		t.Errorf("unexpected status: %q", out)
	}

	mustRun(t, "wifi", "home", "hunter2")
	if out := mustRun(t, "sync", "status"); !strings.Contains(out, "Your store is not synced") {
		t.Errorf("unexpected status: %q", out)
	}
}

func TestSyncMergeRejectsMissingURL(t *testing.T) {
	setupTestEnvironment(t)

	if _, _, code := runCLI(t, "sync", "merge"); code != 1 {
		t.Errorf("expected sync merge without URL to fail")
	}
	if _, _, code := runCLI(t, "sync", "init", " "); code != 1 {
		t.Errorf("expected sync init with a blank URL to fail")
	}
}

func TestConfigFile(t *testing.T) {
	setupTestEnvironment(t)
	dir := t.TempDir()
	store := filepath.Join(dir, "from-config")
	config := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(config, []byte("[store]\npath = \""+store+"\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	mustRun(t, "--config", config, "wifi", "home", "hunter2")
	if _, err := os.Stat(store); err != nil {
		t.Errorf("expected store from config at %s: %v", store, err)
	}

	// The store root is only configurable through the config file.
	if _, _, code := runCLI(t, "--store", filepath.Join(dir, "flag"), "all"); code != 1 {
		t.Errorf("expected --store to be rejected")
	}
	if out := mustRun(t, "--config", config, "wifi", "home"); out != "hunter2\n" {
		t.Errorf("expected value from configured store, got %q", out)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[store]\nunknown = 1\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, _, code := runCLI(t, "--config", bad, "all"); code != 1 {
		t.Errorf("expected an unknown config key to fail")
	}
}

func TestVersion(t *testing.T) {
	setupTestEnvironment(t)

	out := mustRun(t, "version")
	if !strings.Contains(out, "oxio "+Version) {
		t.Errorf("expected version in output, got %q", out)
	}
}
