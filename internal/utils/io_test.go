package utils

import (
	"strings"
	"testing"
)

func TestReadValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing newline", "secret\n", "secret"},
		{"crlf", "secret\r\n", "secret"},
		{"no newline", "secret", "secret"},
		{"only last newline dropped", "a\nb\n\n", "a\nb\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadValue(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetHostname(t *testing.T) {
	if GetHostname() == "" {
		t.Error("GetHostname() returned an empty string")
	}
}
