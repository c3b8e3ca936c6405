// Package app wires configuration, the chat backend, and the session manager
// into one value shared by every shell.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/elee1766/mcpchat/src/backend"
	"github.com/elee1766/mcpchat/src/chat"
	"github.com/elee1766/mcpchat/src/config"
	"github.com/elee1766/mcpchat/src/orclient"
	"github.com/elee1766/mcpchat/src/storage"
)

// App represents the main application with all services
type App struct {
	Config  *config.Config
	Manager *chat.Manager
	Logger  *slog.Logger

	getenv func(string) string

	storeOnce sync.Once
	store     *storage.DB
	storeErr  error
}

// New creates an App over cfg. The backend is chosen here, once.
func New(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &App{
		Config:  cfg,
		Manager: chat.NewManager(backend.New(cfg, logger), logger),
		Logger:  logger,
		getenv:  os.Getenv,
	}
}

// NewWithBackend is New with an explicit backend.
func NewWithBackend(cfg *config.Config, b chat.AgentBackend, logger *slog.Logger) *App {
	a := New(cfg, logger)
	a.Manager = chat.NewManager(b, a.Logger)
	return a
}

// Store opens the transcript archive on first use.
func (a *App) Store(ctx context.Context) (*storage.DB, error) {
	a.storeOnce.Do(func() {
		a.store, a.storeErr = storage.Open(ctx, a.Config.DatabasePath())
		if a.storeErr != nil {
			a.storeErr = fmt.Errorf("failed to open storage: %w", a.storeErr)
		}
	})
	return a.store, a.storeErr
}

// ModelProvider returns an inference client for account-level calls such as
// listing models.
func (a *App) ModelProvider() *orclient.Client {
	api := a.Config.API
	return orclient.NewClient(orclient.Config{
		APIKey:            a.APIKey(),
		BaseURL:           api.BaseURL,
		Logger:            a.Logger,
		Timeout:           api.Timeout.Std(),
		RetryCount:        api.RetryCount,
		SiteURL:           api.SiteURL,
		SiteName:          api.SiteName,
		RequestsPerMinute: api.RateLimit.RequestsPerMinute,
		BurstSize:         api.RateLimit.BurstSize,
	})
}

// APIKey reads the inference credential from the environment.
func (a *App) APIKey() string {
	name := a.Config.API.APIKeyEnvVar
	if name == "" {
		name = config.DefaultAPIKeyEnvVar
	}
	return strings.TrimSpace(a.getenv(name))
}

// ConnectEndpoint resolves nameOrURL against the configured endpoints and
// connects the manager to it.
func (a *App) ConnectEndpoint(ctx context.Context, nameOrURL string) chat.ConnectOutcome {
	ep, err := a.Config.ResolveEndpoint(nameOrURL)
	if err != nil {
		return chat.ConnectOutcome{Message: chat.Describe(&chat.ConnectionError{URL: nameOrURL, Err: err})}
	}
	return a.Manager.Connect(ctx, ep.URL)
}

// TestEndpoint is ConnectEndpoint for a probe connection.
func (a *App) TestEndpoint(ctx context.Context, nameOrURL string) chat.ConnectOutcome {
	ep, err := a.Config.ResolveEndpoint(nameOrURL)
	if err != nil {
		return chat.ConnectOutcome{Message: chat.Describe(&chat.ConnectionError{URL: nameOrURL, Err: err})}
	}
	return a.Manager.TestConnection(ctx, ep.URL)
}

// AutoConnect connects to the default endpoint when configured to. The
// boolean reports whether an attempt was made.
func (a *App) AutoConnect(ctx context.Context) (chat.ConnectOutcome, bool) {
	if !a.Config.ShouldAutoConnect() {
		return chat.ConnectOutcome{}, false
	}
	outcome := a.ConnectEndpoint(ctx, "")
	a.Logger.Info("auto connect", "connected", outcome.Connected, "message", outcome.Message)
	return outcome, true
}

// SaveTranscript archives the current conversation log.
func (a *App) SaveTranscript(ctx context.Context, title string) (*storage.Transcript, int, error) {
	turns := a.Manager.History()
	if len(turns) == 0 {
		return nil, 0, fmt.Errorf("nothing to save: the conversation is empty")
	}

	store, err := a.Store(ctx)
	if err != nil {
		return nil, 0, err
	}

	status := a.Manager.Status()
	if title == "" {
		title = defaultTitle(turns[0].User)
	}
	transcript := &storage.Transcript{
		Title:     title,
		Endpoint:  status.Endpoint,
		Backend:   status.Backend,
		ToolNames: status.ToolNames,
	}
	if status.Backend != "simulated" {
		transcript.Model = a.Config.Agent.Model
	}

	rows := make([]storage.Turn, len(turns))
	for i, t := range turns {
		rows[i] = storage.Turn{UserText: t.User, AssistantText: t.Assistant, CreatedAt: t.At}
	}
	if err := store.SaveTranscript(ctx, transcript, rows); err != nil {
		return nil, 0, fmt.Errorf("failed to save transcript: %w", err)
	}
	a.Logger.Info("transcript saved", "id", transcript.ID, "turns", len(rows))
	return transcript, len(rows), nil
}

// Close disconnects and releases the archive.
func (a *App) Close() error {
	a.Manager.Disconnect()
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func defaultTitle(firstMessage string) string {
	title := strings.Join(strings.Fields(firstMessage), " ")
	const max = 60
	if r := []rune(title); len(r) > max {
		title = string(r[:max-1]) + "…"
	}
	return title
}
