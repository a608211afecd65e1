package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of text, in color when the terminal allows it
// and with plain decorations otherwise.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if colorDisabled() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline appends a newline unless s already ends with one.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// colorDisabled honours NO_COLOR (https://no-color.org/) as well as
// fatih/color's own terminal detection.
func colorDisabled() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats commands the user can run. `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	Path    = Formatter{color.New(color.FgYellow), "", ""}
	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Group formats group headings in listings. [brackets] without color.
	Group = Formatter{color.New(color.FgCyan, color.Bold), "[", "]"}

	// Name formats item names. 'single quotes' without color.
	Name = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text. (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
