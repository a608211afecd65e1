package ui

import (
	"strings"
	"unicode/utf8"
)

// PreviewLimit is the length past which multi-line values are shortened in
// listings.
const PreviewLimit = 60

// Preview returns the form of value shown in listings. Multi-line values
// longer than PreviewLimit are flattened onto one line and cut at the limit
// with an ellipsis. Other values are returned unchanged.
func Preview(value string) string {
	if !strings.ContainsRune(value, '\n') || utf8.RuneCountInString(value) <= PreviewLimit {
		return value
	}
	flat := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value)
	runes := []rune(flat)
	if len(runes) <= PreviewLimit {
		return flat
	}
	return string(runes[:PreviewLimit]) + "..."
}

// AlignRight left-pads name with spaces to width runes.
func AlignRight(name string, width int) string {
	if n := utf8.RuneCountInString(name); n < width {
		return strings.Repeat(" ", width-n) + name
	}
	return name
}
