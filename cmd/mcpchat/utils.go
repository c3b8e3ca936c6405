package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/x/term"

	"github.com/elee1766/mcpchat/src/app"
	"github.com/elee1766/mcpchat/src/config"
	"github.com/elee1766/mcpchat/src/theme"
)

// loadConfig loads the layered configuration and applies global flags.
func loadConfig(cli *CLI) (*config.Config, error) {
	precedence := config.GetConfigPaths()
	precedence.ExplicitConfig = cli.Config

	cfg, err := config.NewLoader(nil, precedence).Load()
	if err != nil {
		return nil, err
	}
	overrideConfigFromCLI(cfg, cli)
	return cfg, nil
}

// overrideConfigFromCLI overrides configuration values with CLI flags
func overrideConfigFromCLI(cfg *config.Config, cli *CLI) {
	if cli.LogLevel != "" {
		cfg.Observability.Logging.Level = cli.LogLevel
	}
	if cli.Simulate {
		cfg.Agent.Simulate = true
	}
	if cli.NoColor || os.Getenv("NO_COLOR") != "" {
		off := false
		cfg.UI.Color = &off
	}
}

// newApp loads configuration and builds the application. Interactive
// commands log to a file so the terminal stays clean.
func newApp(cli *CLI, logToFile bool) (*app.App, error) {
	cfg, err := loadConfig(cli)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, createLogger(cfg, logToFile)), nil
}

// newRenderer builds the terminal renderer for stdout.
func newRenderer(cfg *config.Config) *theme.Renderer {
	fd := os.Stdout.Fd()
	width := cfg.UI.WrapWidth
	if width == 0 {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	return theme.New(theme.Options{
		Width:       width,
		SyntaxStyle: cfg.UI.SyntaxStyle,
		Color:       cfg.ColorEnabled() && term.IsTerminal(fd),
	})
}

// maskAPIKey masks an API key for display
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
