package chat

import (
	"errors"
	"fmt"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"empty", ErrEmptyMessage, "❌ Please enter a message."},
		{"busy", ErrBusy, "⏳ Still working on the previous message, please wait."},
		{"not connected", ErrNotConnected, "❌ Please connect to a server first."},
		{
			"connection",
			&ConnectionError{URL: "https://x/sse", Err: errors.New("401 unauthorized")},
			"❌ Connection failed: 401 unauthorized",
		},
		{
			"wrapped connection",
			fmt.Errorf("retry: %w", &ConnectionError{URL: "https://x/sse", Err: errors.New("timeout")}),
			"❌ Connection failed: timeout",
		},
		{"execution", &ExecutionError{Err: errors.New("tool crashed")}, "❌ Error: tool crashed"},
		{"execution without cause", &ExecutionError{}, "❌ Error: unknown error"},
		{"other", errors.New("weird"), "❌ Error: weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	if !errors.Is(&ConnectionError{Err: cause}, cause) {
		t.Error("ConnectionError should unwrap to its cause")
	}
	if !errors.Is(&ExecutionError{Err: cause}, cause) {
		t.Error("ExecutionError should unwrap to its cause")
	}
}
