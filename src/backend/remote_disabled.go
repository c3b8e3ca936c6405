//go:build nomcp

package backend

import (
	"log/slog"

	"github.com/elee1766/mcpchat/src/chat"
	"github.com/elee1766/mcpchat/src/config"
)

const remoteAvailable = false

func newRemote(_ *config.Config, logger *slog.Logger) chat.AgentBackend {
	logger.Warn("remote agent support not compiled in, using simulated backend")
	return chat.SimulatedBackend{}
}
