package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestIsMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("reading: %w", IO("read item", "/store/abc", fs.ErrNotExist))

	if !Is(err, ErrIO) {
		t.Error("expected wrapped IO error to match ErrIO")
	}
	if Is(err, ErrNotFound) {
		t.Error("IO error must not match ErrNotFound")
	}
	if !Is(err, fs.ErrNotExist) {
		t.Error("expected the cause to stay reachable")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"typed", New(KindConfig, "sync", "no identity"), KindConfig},
		{"wrapped", fmt.Errorf("outer: %w", CorruptEntry("/store/.index", 3, 2, "")), KindCorruptEntry},
		{"foreign", stderrors.New("boom"), KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"corrupt entry",
			CorruptEntry("/store/abc", 3, 2, ""),
			"decode: corrupt entry at /store/abc (expected 3 fields, found 2)",
		},
		{
			"detail",
			New(KindNotFound, "get", "no item named x was found"),
			"get: not found: no item named x was found",
		},
		{
			"cause",
			Wrap(KindRemote, "push", stderrors.New("connection reset")),
			"push: remote error: connection reset",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(KindIO, "op", nil) != nil {
		t.Error("Wrap(nil) must return nil")
	}
	if IO("op", "/p", nil) != nil {
		t.Error("IO(nil) must return nil")
	}
}
