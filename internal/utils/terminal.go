package utils

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// StdoutIsTerminal reports whether standard output is a terminal, which is
// when values go to the clipboard instead of being printed.
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout)
}
