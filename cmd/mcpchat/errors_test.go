package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/elee1766/mcpchat/src/config"
	"github.com/elee1766/mcpchat/src/orclient"
	"github.com/elee1766/mcpchat/src/storage"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic", errors.New("boom"), ExitError},
		{"interrupted", fmt.Errorf("run: %w", context.Canceled), ExitInterrupted},
		{"timeout", fmt.Errorf("run: %w", context.DeadlineExceeded), ExitTimeout},
		{"validation", fmt.Errorf("configuration validation failed: %w", config.ValidationError{Message: "bad"}), ExitConfig},
		{"auth", fmt.Errorf("failed to list models: %w", &orclient.APIError{StatusCode: 401}), ExitAuth},
		{"api", &orclient.APIError{StatusCode: 502}, ExitNetwork},
		{"not found", storage.ErrTranscriptNotFound, ExitNotFound},
		{"connect", fmt.Errorf("%w: no such host", errConnectFailed), ExitNetwork},
		{"usage", errors.New("invalid message"), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"short":           "*****",
		"sk-or-v1-abcdef": "sk-o*******cdef",
	}
	for in, want := range tests {
		if got := maskAPIKey(in); got != want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOverrideConfigFromCLI(t *testing.T) {
	cfg := config.DefaultConfig()
	overrideConfigFromCLI(cfg, &CLI{LogLevel: "debug", Simulate: true, NoColor: true})

	if cfg.Observability.Logging.Level != "debug" {
		t.Errorf("Expected debug level, got %s", cfg.Observability.Logging.Level)
	}
	if !cfg.Agent.Simulate {
		t.Error("Expected simulate")
	}
	if cfg.ColorEnabled() {
		t.Error("Expected color disabled")
	}
}
