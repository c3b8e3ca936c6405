// Package backend picks the chat backend for a process from configuration.
package backend

import (
	"log/slog"

	"github.com/elee1766/mcpchat/src/chat"
	"github.com/elee1766/mcpchat/src/config"
)

// New returns the backend every session manager of this process uses. The
// simulated backend is returned when the configuration asks for it or when
// the binary was built without remote agent support.
func New(cfg *config.Config, logger *slog.Logger) chat.AgentBackend {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Agent.Simulate {
		logger.Info("using simulated backend", "reason", "configured")
		return chat.SimulatedBackend{}
	}
	return newRemote(cfg, logger)
}

// RemoteAvailable reports whether this binary includes remote agent support.
func RemoteAvailable() bool {
	return remoteAvailable
}
