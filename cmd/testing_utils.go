package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

// setupTestEnvironment points HOME and the XDG directories at a temporary
// directory and returns the default store path inside it.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("NO_COLOR", "1")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	origTerminal := stdoutIsTerminal
	origClipboard := writeClipboard
	stdoutIsTerminal = func() bool { return false }
	writeClipboard = func(string) error {
		t.Fatal("unexpected clipboard write")
		return nil
	}
	t.Cleanup(func() {
		stdoutIsTerminal = origTerminal
		writeClipboard = origClipboard
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		resetCommandState()
	})

	return filepath.Join(home, ".oxio.cache")
}

// resetCommandState clears flag values left behind by a previous run.
func resetCommandState() {
	verbose = false
	debug = false
	configPath = ""
	printValue = false
	Settings = nil
	Env = nil
	resetAllCommandState()
	resetDoctorCommandState()
	resetLogCommandState()
}

// runCLI executes the command line with args and returns what it wrote to
// stdout and stderr along with the exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	resetCommandState()

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	code := execute(context.Background(), args)
	return stdout.String(), stderr.String(), code
}

// mustRun is runCLI for commands expected to succeed.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, code := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("oxio %v exited with %d\nstdout: %s\nstderr: %s", args, code, stdout, stderr)
	}
	return stdout
}

// writeEditor installs a shell script as $EDITOR that replaces the edited
// file with content.
func writeEditor(t *testing.T, content string) {
	t.Helper()
	script := filepath.Join(t.TempDir(), "editor.sh")
	body := "#!/bin/sh\nprintf '%s' '" + content + "' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0700); err != nil {
		t.Fatalf("Failed to write editor script: %v", err)
	}
	t.Setenv("EDITOR", script)
}
