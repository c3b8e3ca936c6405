package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reeflective/readline"
)

// ChatCmd starts the interactive chat
type ChatCmd struct {
	Endpoint      string `arg:"" optional:"" help:"Endpoint name or URL to connect to on start"`
	NoAutoConnect bool   `help:"Do not connect to the default endpoint on start"`
}

func (c *ChatCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(cli, true)
	if err != nil {
		return err
	}
	defer a.Close()

	r := newRenderer(a.Config)

	rl := readline.NewShell()
	rl.Prompt.Primary(r.Prompt)
	rl.History.Add("default", readline.NewInMemoryHistory())
	rl.Completer = func(line []rune, cursor int) readline.Completions {
		return completeInput(string(line), cursor)
	}

	fmt.Println(r.Title("mcpchat") + r.Muted(" · backend: "+a.Manager.Backend()))

	switch {
	case c.Endpoint != "":
		fmt.Println(r.Notice(a.ConnectEndpoint(ctx, c.Endpoint).Message))
	case !c.NoAutoConnect:
		if outcome, ok := a.AutoConnect(ctx); ok {
			fmt.Println(r.Notice(outcome.Message))
		}
	}
	fmt.Println(r.Muted("Type a message and press Enter. Use /help for commands."))

	session := &repl{app: a, r: r, in: rl, out: os.Stdout}
	return session.run(ctx)
}
