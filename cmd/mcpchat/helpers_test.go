package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/elee1766/mcpchat/src/app"
	"github.com/elee1766/mcpchat/src/config"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Agent.Simulate = true
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "transcripts.db")
	a := app.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { a.Close() })
	return a
}
