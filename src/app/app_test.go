package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elee1766/mcpchat/src/config"
	"github.com/elee1766/mcpchat/src/storage"
)

func simulatedApp(t *testing.T) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Agent.Simulate = true
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "transcripts.db")
	a := New(cfg, nil)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNewUsesConfiguredBackend(t *testing.T) {
	a := simulatedApp(t)
	assert.Equal(t, "simulated", a.Manager.Backend())
}

func TestConnectEndpointResolvesNames(t *testing.T) {
	ctx := context.Background()
	a := simulatedApp(t)

	outcome := a.ConnectEndpoint(ctx, "mcp tools collection")
	assert.True(t, outcome.Connected)
	assert.Equal(t, config.DefaultEndpointURL, a.Manager.Status().Endpoint)

	outcome = a.ConnectEndpoint(ctx, "nowhere")
	assert.False(t, outcome.Connected)
	assert.Contains(t, outcome.Message, "❌ Connection failed: ")
}

func TestAutoConnect(t *testing.T) {
	ctx := context.Background()
	a := simulatedApp(t)

	outcome, attempted := a.AutoConnect(ctx)
	assert.True(t, attempted)
	assert.Equal(t, "✅ Connected (simulated - remote agent support not available)", outcome.Message)

	off := false
	a.Config.AutoConnect = &off
	_, attempted = a.AutoConnect(ctx)
	assert.False(t, attempted)
}

func TestSaveTranscript(t *testing.T) {
	ctx := context.Background()
	a := simulatedApp(t)

	_, _, err := a.SaveTranscript(ctx, "")
	assert.Error(t, err)

	a.Manager.SendMessage(ctx, "What is 2+2?")
	a.Manager.SendMessage(ctx, "thanks")

	transcript, n, err := a.SaveTranscript(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "What is 2+2?", transcript.Title)
	assert.Equal(t, "simulated", transcript.Backend)
	assert.Empty(t, transcript.Model)

	store, err := a.Store(ctx)
	require.NoError(t, err)
	turns, err := storage.GetTurns(ctx, store.DB(), transcript.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "thanks", turns[1].UserText)
}

func TestAPIKey(t *testing.T) {
	a := New(config.DefaultConfig(), nil)
	a.getenv = func(k string) string {
		if k == "OPENROUTER_API_KEY" {
			return " sk-test \n"
		}
		return ""
	}
	assert.Equal(t, "sk-test", a.APIKey())
	assert.True(t, a.ModelProvider().HasAPIKey())
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "a b", defaultTitle("  a\n b "))
	long := defaultTitle(string(make([]rune, 100)))
	assert.Len(t, []rune(long), 60)
}
