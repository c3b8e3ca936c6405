package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/elee1766/mcpchat/src/config"
)

// ServersCmd lists configured endpoints
type ServersCmd struct {
	Format string `help:"Output format (table, json)" enum:"table,json" default:"table"`
}

func (c *ServersCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg.Endpoints)
	}
	printEndpoints(os.Stdout, cfg)
	return nil
}

// TestCmd probes an endpoint
type TestCmd struct {
	Endpoint string `arg:"" optional:"" help:"Endpoint name or URL (defaults to the configured default)"`
}

func (c *TestCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(cli, false)
	if err != nil {
		return err
	}
	defer a.Close()

	r := newRenderer(a.Config)
	outcome := a.TestEndpoint(ctx, c.Endpoint)
	fmt.Println(r.Notice(outcome.Message))
	if !outcome.Connected {
		return fmt.Errorf("%w: %s", errConnectFailed, strings.TrimPrefix(outcome.Message, "❌ Connection failed: "))
	}
	return nil
}

func printEndpoints(out io.Writer, cfg *config.Config) {
	if len(cfg.Endpoints) == 0 {
		fmt.Fprintln(out, "No endpoints configured.")
		return
	}

	def, _ := cfg.FindEndpoint(cfg.DefaultEndpoint)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "\tName\tURL")
	fmt.Fprintln(w, "\t----\t---")
	for _, ep := range cfg.Endpoints {
		marker := ""
		if ep.Name == def.Name {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", marker, ep.Name, ep.URL)
	}
}
