//go:build !nomcp

package backend

import (
	"log/slog"

	"github.com/elee1766/mcpchat/src/chat"
	"github.com/elee1766/mcpchat/src/config"
	"github.com/elee1766/mcpchat/src/remote"
)

const remoteAvailable = true

func newRemote(cfg *config.Config, logger *slog.Logger) chat.AgentBackend {
	return remote.New(RemoteConfig(cfg), logger)
}

// RemoteConfig maps application configuration onto the remote backend.
func RemoteConfig(cfg *config.Config) remote.Config {
	rc := remote.Config{
		APIKeyEnvVar:      cfg.API.APIKeyEnvVar,
		BaseURL:           cfg.API.BaseURL,
		Model:             cfg.Agent.Model,
		SiteURL:           cfg.API.SiteURL,
		SiteName:          cfg.API.SiteName,
		SystemPrompt:      cfg.Agent.SystemPrompt,
		MaxSteps:          cfg.Agent.MaxSteps,
		Temperature:       cfg.Agent.Temperature,
		ConnectTimeout:    cfg.MCP.ConnectTimeout.Std(),
		RunTimeout:        cfg.Agent.RunTimeout.Std(),
		APITimeout:        cfg.API.Timeout.Std(),
		KeepAlive:         cfg.MCP.KeepAlive.Std(),
		RetryCount:        cfg.API.RetryCount,
		RequestsPerMinute: cfg.API.RateLimit.RequestsPerMinute,
		BurstSize:         cfg.API.RateLimit.BurstSize,
	}
	if cfg.Agent.MaxTokens > 0 {
		maxTokens := cfg.Agent.MaxTokens
		rc.MaxTokens = &maxTokens
	}
	return rc
}
