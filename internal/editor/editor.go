// Package editor lets the user edit a value in their preferred text editor.
package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Editor turns an initial value into an edited one.
type Editor interface {
	Edit(ctx context.Context, initial string) (string, error)
}

// Command runs an external editor on a temporary file.
type Command struct {
	// Argv is the editor command line. The file path is appended to it.
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// FromEnv builds a Command from $VISUAL, then $EDITOR, falling back to vi.
// The variables may carry arguments, as in EDITOR="code --wait".
func FromEnv() *Command {
	cmdline := "vi"
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			cmdline = v
			break
		}
	}
	return &Command{
		Argv:   strings.Fields(cmdline),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Edit writes initial to a private temporary file, waits for the editor to
// exit and returns the file's content without its trailing newline.
func (c *Command) Edit(ctx context.Context, initial string) (string, error) {
	if len(c.Argv) == 0 {
		return "", fmt.Errorf("no editor configured")
	}

	f, err := os.CreateTemp("", "oxio-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}

	args := append(append([]string{}, c.Argv[1:]...), path)
	cmd := exec.CommandContext(ctx, c.Argv[0], args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", c.Argv[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited value: %w", err)
	}
	return TrimNewline(string(data)), nil
}

// TrimNewline removes one trailing "\n" or "\r\n".
func TrimNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		s = strings.TrimSuffix(s, "\n")
		s = strings.TrimSuffix(s, "\r")
	}
	return s
}

// Func adapts a function to the Editor interface.
type Func func(ctx context.Context, initial string) (string, error)

func (f Func) Edit(ctx context.Context, initial string) (string, error) {
	return f(ctx, initial)
}
