package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/elee1766/mcpchat/src/storage"
)

// TranscriptsCmd browses the transcript archive
type TranscriptsCmd struct {
	List   TranscriptsListCmd   `cmd:"" default:"1" help:"List saved transcripts"`
	Show   TranscriptsShowCmd   `cmd:"" help:"Print a saved transcript"`
	Delete TranscriptsDeleteCmd `cmd:"" help:"Delete a saved transcript"`
}

type TranscriptsListCmd struct {
	Limit  int    `short:"n" help:"Maximum number of transcripts to list (0 for all)" default:"20"`
	Format string `help:"Output format (table, json)" enum:"table,json" default:"table"`
}

func (c *TranscriptsListCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(cli, false)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.Store(ctx)
	if err != nil {
		return err
	}
	list, err := storage.ListTranscripts(ctx, store.DB(), c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list transcripts: %w", err)
	}

	if c.Format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(list)
	}
	if len(list) == 0 {
		fmt.Println("No saved transcripts. Use /save in a chat to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tSaved\tTurns\tBackend\tTitle")
	fmt.Fprintln(w, "--\t-----\t-----\t-------\t-----")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			shortID(t.ID), t.CreatedAt.Local().Format("2006-01-02 15:04"), t.TurnCount, t.Backend, t.Title)
	}
	return nil
}

type TranscriptsShowCmd struct {
	ID     string `arg:"" help:"Transcript ID or unique prefix"`
	Format string `help:"Output format (text, json)" enum:"text,json" default:"text"`
}

func (c *TranscriptsShowCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(cli, false)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.Store(ctx)
	if err != nil {
		return err
	}
	transcript, err := storage.GetTranscript(ctx, store.DB(), c.ID)
	if err != nil {
		return err
	}
	turns, err := storage.GetTurns(ctx, store.DB(), transcript.ID)
	if err != nil {
		return fmt.Errorf("failed to load turns: %w", err)
	}

	if c.Format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			*storage.Transcript
			Turns []storage.Turn `json:"turns"`
		}{transcript, turns})
	}

	r := newRenderer(a.Config)
	fmt.Println(r.Title(transcript.Title))
	meta := []string{transcript.CreatedAt.Local().Format("2006-01-02 15:04"), transcript.Backend}
	if transcript.Endpoint != "" {
		meta = append(meta, transcript.Endpoint)
	}
	if transcript.Model != "" {
		meta = append(meta, transcript.Model)
	}
	fmt.Println(r.Muted(strings.Join(meta, " · ")))
	fmt.Println()

	session := &repl{app: a, r: r, out: os.Stdout}
	for _, t := range turns {
		fmt.Println(r.User(t.UserText))
		fmt.Println(session.reply(t.AssistantText))
		fmt.Println()
	}
	return nil
}

type TranscriptsDeleteCmd struct {
	ID string `arg:"" help:"Transcript ID or unique prefix"`
}

func (c *TranscriptsDeleteCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(cli, false)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.Store(ctx)
	if err != nil {
		return err
	}
	transcript, err := storage.GetTranscript(ctx, store.DB(), c.ID)
	if err != nil {
		return err
	}
	if err := storage.DeleteTranscript(ctx, store.DB(), transcript.ID); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	fmt.Printf("Deleted transcript %s (%s)\n", shortID(transcript.ID), transcript.Title)
	return nil
}
