package chat

import (
	"context"
	"fmt"
)

// Session is one live connection to a remote agent.
type Session interface {
	// ToolNames lists the tools the agent can use.
	ToolNames() []string
	// Run performs one exchange and returns the agent's reply.
	Run(ctx context.Context, text string) (string, error)
	Close() error
}

// AgentBackend opens sessions. A Manager is built with exactly one backend,
// chosen at startup.
type AgentBackend interface {
	Name() string
	Connect(ctx context.Context, endpointURL string) (Session, error)
	// Standby returns a session usable without connecting, or nil when
	// messages require an explicit connection.
	Standby() Session
}

// connectedMessager lets a session override the default connect message.
type connectedMessager interface {
	ConnectedMessage() string
}

// SimulatedBackend stands in for the remote agent when it is unavailable.
// Every operation succeeds and replies echo the input.
type SimulatedBackend struct{}

var _ AgentBackend = SimulatedBackend{}

func (SimulatedBackend) Name() string { return "simulated" }

func (SimulatedBackend) Connect(_ context.Context, _ string) (Session, error) {
	return simulatedSession{}, nil
}

func (SimulatedBackend) Standby() Session { return simulatedSession{} }

type simulatedSession struct{}

func (simulatedSession) ToolNames() []string { return nil }

func (simulatedSession) Run(_ context.Context, text string) (string, error) {
	return fmt.Sprintf("Simulated response: I received your message '%s' but cannot process it without a remote agent.", text), nil
}

func (simulatedSession) Close() error { return nil }

func (simulatedSession) ConnectedMessage() string {
	return "✅ Connected (simulated - remote agent support not available)"
}
