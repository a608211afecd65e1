package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadValue reads a value piped on r. A single trailing newline is dropped
// so `echo secret | oxio group name -` stores "secret".
func ReadValue(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok && IsTerminal(f) {
		return "", fmt.Errorf("no value provided on stdin (hint: pipe the value to this command)")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}

	value := string(data)
	if strings.HasSuffix(value, "\r\n") {
		return strings.TrimSuffix(value, "\r\n"), nil
	}
	return strings.TrimSuffix(value, "\n"), nil
}
