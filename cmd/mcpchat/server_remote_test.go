//go:build !nomcp

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elee1766/mcpchat/src/aisdk"
	"github.com/elee1766/mcpchat/src/app"
	"github.com/elee1766/mcpchat/src/chat"
	"github.com/elee1766/mcpchat/src/config"
	"github.com/elee1766/mcpchat/src/mcp/mcptest"
)

// addingModel calls the add tool once and then repeats its result.
func addingModel(w http.ResponseWriter, r *http.Request) {
	var req aisdk.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	msg := aisdk.Message{Role: aisdk.RoleAssistant}
	if last := req.Messages[len(req.Messages)-1]; last.Role == aisdk.RoleTool {
		msg.Content = last.Content
	} else {
		msg.ToolCalls = []aisdk.ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: aisdk.FunctionCall{Name: "add", Arguments: json.RawMessage(`{"a":2,"b":2}`)},
		}}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(aisdk.ChatCompletionResponse{
		ID:      "gen-1",
		Model:   req.Model,
		Choices: []aisdk.Choice{{Message: msg, FinishReason: "stop"}},
	})
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServerRemoteToolRoundTrip(t *testing.T) {
	mcpSrv := mcptest.NewServer(t)
	inference := httptest.NewServer(http.HandlerFunc(addingModel))
	t.Cleanup(inference.Close)

	t.Setenv("MCPCHAT_TEST_API_KEY", "sk-test")
	cfg := config.DefaultConfig()
	cfg.API.APIKeyEnvVar = "MCPCHAT_TEST_API_KEY"
	cfg.API.BaseURL = inference.URL
	cfg.API.RetryCount = 1
	cfg.Agent.Model = "test/model"
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "transcripts.db")

	a := app.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { a.Close() })
	if a.Manager.Backend() != "remote" {
		t.Fatalf("Backend = %q, want remote", a.Manager.Backend())
	}

	// A real listener, so each request context ends when its handler returns.
	api := httptest.NewServer(newServer(a))
	t.Cleanup(api.Close)

	resp := postJSON(t, api.URL+"/api/connect", `{"endpoint": "`+mcpSrv.URL+`"}`)
	var outcome chat.ConnectOutcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		t.Fatal(err)
	}
	if !outcome.Connected || outcome.ToolCount != 3 {
		t.Fatalf("Unexpected connect outcome %+v", outcome)
	}

	for i := 1; i <= 2; i++ {
		resp = postJSON(t, api.URL+"/api/message", `{"text": "what is 2+2?"}`)
		var msg messageResponse
		if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
			t.Fatal(err)
		}
		if msg.Reply != "4" || msg.Turns != i {
			t.Errorf("message %d: got %+v, want reply 4 with %d turns", i, msg, i)
		}
	}
}
