package ui

import (
	"strings"
	"testing"
)

func TestPreview(t *testing.T) {
	long := strings.Repeat("x", 40) + "\n" + strings.Repeat("y", 40)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"short single line", "hunter2", "hunter2"},
		{"long single line", strings.Repeat("z", 80), strings.Repeat("z", 80)},
		{"short multi line", "a\nb", "a\nb"},
		{"long multi line", long, strings.Repeat("x", 40) + " " + strings.Repeat("y", 19) + "..."},
		{"crlf", strings.Repeat("a", 30) + "\r\n" + strings.Repeat("b", 40), strings.Repeat("a", 30) + " " + strings.Repeat("b", 29) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.value); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlignRight(t *testing.T) {
	if got := AlignRight("wifi", 6); got != "  wifi" {
		t.Errorf("AlignRight() = %q", got)
	}
	if got := AlignRight("ärger", 6); got != " ärger" {
		t.Errorf("AlignRight() should count runes, got %q", got)
	}
	if got := AlignRight("toolong", 3); got != "toolong" {
		t.Errorf("AlignRight() should not truncate, got %q", got)
	}
}
