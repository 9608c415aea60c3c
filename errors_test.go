package ipc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pipe-works/ipc/ipcerr"
)

// TestIsTypeMismatch verifies detection through every wrapping layer callers use.
func TestIsTypeMismatch(t *testing.T) {
	base := ipcerr.TypeMismatch("canonical.Canonicalize", "x")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "sentinel", err: ErrTypeMismatch, want: true},
		{name: "structured", err: base, want: true},
		{name: "located", err: base.At("$.axes"), want: true},
		{name: "re-attributed", err: base.WithOp("ipc.PayloadHash"), want: true},
		{name: "fmt wrapped", err: fmt.Errorf("hash payload: %w", base), want: true},
		{name: "unrelated", err: errors.New("type mismatch"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTypeMismatch(tt.err); got != tt.want {
				t.Errorf("IsTypeMismatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMismatchPathThroughWrapping(t *testing.T) {
	err := fmt.Errorf("record: %w", ipcerr.TypeMismatch("op", 1).At(`$["odd key"][3]`))

	path, ok := MismatchPath(err)
	if !ok {
		t.Fatal("MismatchPath() found no path")
	}
	if path != `$["odd key"][3]` {
		t.Errorf("MismatchPath() = %q", path)
	}
}
