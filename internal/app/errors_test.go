package app

import (
	"errors"
	"testing"
)

func TestOperationError(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"op only", NewOperationError("reload", "", nil), "reload"},
		{"with target", NewOperationError("script", "on_click", base), "script on_click: boom"},
		{"with context", NewOperationError("reload", "pianoroll.toml", base).WithContext("grid"), "reload pianoroll.toml (grid): boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if !errors.Is(NewOperationError("script", "x", base), base) {
		t.Error("OperationError should unwrap to its cause")
	}

	var nilErr *OperationError
	if nilErr.WithContext("x") != nil || nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil OperationError should be inert")
	}
}

func TestInitError(t *testing.T) {
	err := &InitError{Component: "backend", Err: ErrNoBackend}

	if got, want := err.Error(), "init backend: no backend"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNoBackend) {
		t.Error("InitError should unwrap")
	}
}
