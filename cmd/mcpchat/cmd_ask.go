package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/elee1766/mcpchat/src/chat"
)

// AskCmd sends one message and prints the reply
type AskCmd struct {
	Text     []string `arg:"" help:"The message to send"`
	Endpoint string   `short:"e" help:"Endpoint name or URL (defaults to the configured default)"`
	Format   string   `help:"Output format (text, json)" enum:"text,json" default:"text"`
}

type askResult struct {
	Endpoint string   `json:"endpoint,omitempty"`
	Tools    []string `json:"tools,omitempty"`
	Message  string   `json:"message"`
	Reply    string   `json:"reply"`
}

func (c *AskCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(cli, false)
	if err != nil {
		return err
	}
	defer a.Close()

	text := strings.Join(c.Text, " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("invalid message: %w", chat.ErrEmptyMessage)
	}

	outcome := a.ConnectEndpoint(ctx, c.Endpoint)
	if !outcome.Connected {
		return fmt.Errorf("%w: %s", errConnectFailed, strings.TrimPrefix(outcome.Message, "❌ Connection failed: "))
	}
	a.Logger.Info(outcome.Message)

	reply := a.Manager.SendMessage(ctx, text)

	if c.Format == "json" {
		status := a.Manager.Status()
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(askResult{
			Endpoint: status.Endpoint,
			Tools:    status.ToolNames,
			Message:  text,
			Reply:    reply,
		})
	}

	r := newRenderer(a.Config)
	if strings.HasPrefix(reply, "❌") {
		fmt.Fprintln(os.Stderr, r.Notice(reply))
		return fmt.Errorf("agent run failed")
	}
	fmt.Println(r.Assistant(reply))
	return nil
}
