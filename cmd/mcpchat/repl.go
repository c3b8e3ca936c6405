package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/shlex"
	"github.com/reeflective/readline"

	"github.com/elee1766/mcpchat/src/app"
	"github.com/elee1766/mcpchat/src/theme"
)

// slashCommands defines the available slash commands with their descriptions.
var slashCommands = []struct {
	name        string
	usage       string
	description string
}{
	{"/connect", "/connect [name|url]", "Connect to an MCP endpoint (default endpoint when omitted)"},
	{"/disconnect", "/disconnect", "Close the current connection"},
	{"/status", "/status", "Show connection status"},
	{"/history", "/history", "Show the conversation so far"},
	{"/clear", "/clear", "Clear the conversation"},
	{"/servers", "/servers", "List configured endpoints"},
	{"/test", "/test <name|url>", "Test an endpoint without switching to it"},
	{"/examples", "/examples [n]", "List example prompts, or send example n"},
	{"/save", "/save [title]", "Save the conversation to the transcript archive"},
	{"/help", "/help", "Show available commands"},
	{"/quit", "/quit", "Exit the chat"},
}

type lineReader interface {
	Readline() (string, error)
}

type repl struct {
	app *app.App
	r   *theme.Renderer
	in  lineReader
	out io.Writer
}

// run reads lines until EOF, interrupt, or /quit.
func (c *repl) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := c.in.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				fmt.Fprintln(c.out, "\n👋 Goodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := c.handleCommand(ctx, line); quit {
				fmt.Fprintln(c.out, "👋 Goodbye!")
				return nil
			}
			continue
		}

		c.send(ctx, line)
	}
}

func (c *repl) send(ctx context.Context, text string) {
	reply := c.app.Manager.SendMessage(ctx, text)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.reply(reply))
	fmt.Fprintln(c.out)
}

func (c *repl) reply(text string) string {
	for _, marker := range []string{"❌", "⏳"} {
		if strings.HasPrefix(text, marker) {
			return c.r.Notice(text)
		}
	}
	return c.r.Assistant(text)
}

func (c *repl) handleCommand(ctx context.Context, line string) (quit bool) {
	args, err := shlex.Split(strings.TrimPrefix(line, "/"))
	if err != nil {
		fmt.Fprintln(c.out, c.r.Notice("❌ "+err.Error()))
		return false
	}
	if len(args) == 0 {
		return false
	}

	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "h", "?":
		c.printHelp()
	case "connect":
		fmt.Fprintln(c.out, c.r.Notice(c.app.ConnectEndpoint(ctx, strings.Join(rest, " ")).Message))
	case "disconnect":
		c.app.Manager.Disconnect()
		fmt.Fprintln(c.out, "Disconnected.")
	case "status":
		c.printStatus()
	case "history":
		c.printHistory()
	case "clear":
		c.app.Manager.ClearHistory()
		fmt.Fprintln(c.out, "Conversation cleared.")
	case "servers":
		printEndpoints(c.out, c.app.Config)
	case "test":
		if len(rest) == 0 {
			fmt.Fprintln(c.out, c.r.Notice("❌ Usage: /test <name|url>"))
			return false
		}
		fmt.Fprintln(c.out, c.r.Notice(c.app.TestEndpoint(ctx, strings.Join(rest, " ")).Message))
	case "examples":
		c.examples(ctx, rest)
	case "save":
		transcript, n, err := c.app.SaveTranscript(ctx, strings.Join(rest, " "))
		if err != nil {
			fmt.Fprintln(c.out, c.r.Notice("❌ "+err.Error()))
			return false
		}
		fmt.Fprintln(c.out, c.r.Notice(fmt.Sprintf("✅ Saved transcript %s (%d turns)", shortID(transcript.ID), n)))
	default:
		fmt.Fprintf(c.out, "❓ Unknown command: %s (use /help for available commands)\n", cmd)
	}
	return false
}

func (c *repl) examples(ctx context.Context, args []string) {
	examples := c.app.Config.Examples
	if len(args) == 0 {
		if len(examples) == 0 {
			fmt.Fprintln(c.out, "No example prompts configured.")
			return
		}
		for i, ex := range examples {
			fmt.Fprintf(c.out, "  %d. %s\n", i+1, ex)
		}
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(examples) {
		fmt.Fprintln(c.out, c.r.Notice(fmt.Sprintf("❌ No example %q (use /examples to list them)", args[0])))
		return
	}
	fmt.Fprintln(c.out, c.r.User(examples[n-1]))
	c.send(ctx, examples[n-1])
}

func (c *repl) printStatus() {
	status := c.app.Manager.Status()
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Backend:\t%s\n", status.Backend)
	if !status.Connected {
		fmt.Fprintf(w, "Connected:\tno\n")
	} else {
		fmt.Fprintf(w, "Connected:\t%s\n", status.Endpoint)
		fmt.Fprintf(w, "Tools:\t%d\n", status.ToolCount)
		if len(status.ToolNames) > 0 {
			fmt.Fprintf(w, "\t%s\n", strings.Join(status.ToolNames, ", "))
		}
	}
	fmt.Fprintf(w, "Turns:\t%d\n", status.Turns)
}

func (c *repl) printHistory() {
	turns := c.app.Manager.History()
	if len(turns) == 0 {
		fmt.Fprintln(c.out, "No messages yet.")
		return
	}
	for _, t := range turns {
		fmt.Fprintln(c.out, c.r.Muted(t.At.Format("15:04:05")))
		fmt.Fprintln(c.out, c.r.User(t.User))
		fmt.Fprintln(c.out, c.reply(t.Assistant))
		fmt.Fprintln(c.out)
	}
}

func (c *repl) printHelp() {
	fmt.Fprintln(c.out, c.r.Title("Available commands"))
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, cmd := range slashCommands {
		fmt.Fprintf(w, "  %s\t%s\n", cmd.usage, cmd.description)
	}
	w.Flush()
	fmt.Fprintln(c.out, "\nAnything else is sent to the agent. Ctrl+D exits.")
}

// completeInput provides tab completion for slash commands.
func completeInput(line string, cursor int) readline.Completions {
	if cursor > len(line) {
		cursor = len(line)
	}
	text := line[:cursor]
	if !strings.HasPrefix(text, "/") || strings.Contains(text, " ") {
		return readline.Completions{}
	}

	pairs := make([]string, 0, len(slashCommands)*2)
	for _, cmd := range slashCommands {
		if strings.HasPrefix(cmd.name, text) {
			pairs = append(pairs, cmd.name, cmd.description)
		}
	}
	if len(pairs) == 0 {
		return readline.Completions{}
	}

	return readline.CompleteValuesDescribed(pairs...).
		Tag("commands").
		NoSpace('/')
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
