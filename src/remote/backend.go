// Package remote implements the chat backend that talks to a real MCP tool
// server and an OpenAI-compatible inference service.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/elee1766/mcpchat/src/agent"
	"github.com/elee1766/mcpchat/src/chat"
	"github.com/elee1766/mcpchat/src/mcp"
	"github.com/elee1766/mcpchat/src/orclient"
)

// DefaultAPIKeyEnvVar names the environment variable holding the inference
// credential.
const DefaultAPIKeyEnvVar = "OPENROUTER_API_KEY"

// Config holds everything a Backend needs to open sessions.
type Config struct {
	// APIKeyEnvVar is read on every Connect.
	APIKeyEnvVar string
	BaseURL      string
	Model        string
	SiteURL      string
	SiteName     string

	// SystemPrompt overrides the generated prompt when set.
	SystemPrompt string
	MaxSteps     int
	Temperature  *float64
	MaxTokens    *int

	ConnectTimeout    time.Duration
	RunTimeout        time.Duration
	APITimeout        time.Duration
	KeepAlive         time.Duration
	RetryCount        int
	RequestsPerMinute int
	BurstSize         int
}

// Backend opens sessions made of an MCP connection and an agent bound to its
// tools.
type Backend struct {
	config Config
	logger *slog.Logger
	getenv func(string) string
}

var _ chat.AgentBackend = (*Backend)(nil)

// New creates a remote backend.
func New(config Config, logger *slog.Logger) *Backend {
	if config.APIKeyEnvVar == "" {
		config.APIKeyEnvVar = DefaultAPIKeyEnvVar
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		config: config,
		logger: logger.With("component", "remote_backend"),
		getenv: os.Getenv,
	}
}

func (b *Backend) Name() string { return "remote" }

// Standby returns nil: messages need a connected session.
func (b *Backend) Standby() chat.Session { return nil }

// Connect dials the MCP endpoint, lists its tools and binds them with the
// inference credential into an agent. Any failure after dialing closes the
// connection again.
func (b *Backend) Connect(ctx context.Context, endpointURL string) (chat.Session, error) {
	conn, err := mcp.Dial(ctx, endpointURL, &mcp.DialOptions{
		ConnectTimeout: b.config.ConnectTimeout,
		KeepAlive:      b.config.KeepAlive,
		Logger:         b.logger,
	})
	if err != nil {
		return nil, err
	}

	sess, err := b.bind(ctx, conn)
	if err != nil {
		if cerr := conn.Close(); cerr != nil {
			b.logger.Warn("failed to close connection after setup error", "error", cerr)
		}
		return nil, err
	}
	return sess, nil
}

func (b *Backend) bind(ctx context.Context, conn *mcp.Conn) (*session, error) {
	toolbox, err := mcp.Toolbox(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to load tools: %w", err)
	}
	toolbox.RegisterMiddleware(agent.LoggingMiddleware(b.logger))

	apiKey := b.getenv(b.config.APIKeyEnvVar)
	if apiKey == "" {
		b.logger.Warn("inference credential not set", "env_var", b.config.APIKeyEnvVar)
	}

	client := orclient.NewClient(orclient.Config{
		APIKey:            apiKey,
		BaseURL:           b.config.BaseURL,
		Logger:            b.logger,
		Timeout:           b.config.APITimeout,
		RetryCount:        b.config.RetryCount,
		SiteURL:           b.config.SiteURL,
		SiteName:          b.config.SiteName,
		RequestsPerMinute: b.config.RequestsPerMinute,
		BurstSize:         b.config.BurstSize,
	})

	model, err := client.Model(ctx, b.config.Model)
	if err != nil {
		return nil, err
	}

	prompt := b.config.SystemPrompt
	if prompt == "" {
		prompt = agent.SystemPrompt(toolbox)
	}

	return &session{
		conn:       conn,
		names:      toolbox.Names(),
		runTimeout: b.config.RunTimeout,
		agent: &agent.Agent{
			SystemPrompt: prompt,
			Model:        model,
			Toolbox:      toolbox,
			Logger:       b.logger,
			MaxSteps:     b.config.MaxSteps,
			Temperature:  b.config.Temperature,
			MaxTokens:    b.config.MaxTokens,
		},
	}, nil
}

type session struct {
	conn       *mcp.Conn
	agent      *agent.Agent
	names      []string
	runTimeout time.Duration
}

func (s *session) ToolNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *session) Run(ctx context.Context, text string) (string, error) {
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}
	return s.agent.Run(ctx, text)
}

func (s *session) Close() error {
	return s.conn.Close()
}
