package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	Config   string `short:"c" type:"path" help:"Configuration file to load on top of the default locations"`
	LogLevel string `help:"Log level (debug, info, warn, error), overrides the configuration"`
	Simulate bool   `help:"Use the simulated backend instead of a remote agent"`
	NoColor  bool   `help:"Disable colored output"`

	// Chat is the default command - interactive chat
	Chat ChatCmd `cmd:"" default:"1" help:"Start an interactive chat (default)"`

	Ask         AskCmd         `cmd:"" help:"Send a single message and print the reply"`
	Serve       ServeCmd       `cmd:"" help:"Serve the chat over a local HTTP JSON API"`
	Servers     ServersCmd     `cmd:"" help:"List configured MCP endpoints"`
	Test        TestCmd        `cmd:"" help:"Test the connection to an MCP endpoint"`
	Models      ModelsCmd      `cmd:"" help:"List models offered by the inference service"`
	Transcripts TranscriptsCmd `cmd:"" help:"Browse saved transcripts"`
	ConfigCmd   ConfigCmd      `cmd:"" name:"config" help:"Configuration management"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("mcpchat"),
		kong.Description("Chat with a tool-augmented agent behind an MCP server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := kctx.Run(&cli); err != nil {
		stop()
		NewErrorHandler(createCLILogger(cli.LogLevel)).HandleError(err)
	}
}
