package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/elee1766/mcpchat/src/aisdk"
	"github.com/elee1766/mcpchat/src/orclient"
)

// ModelsCmd lists models offered by the inference service
type ModelsCmd struct {
	Query     string `arg:"" optional:"" help:"Only show models whose ID or name contains this"`
	Tools     bool   `help:"Only show models that support tool calling"`
	Format    string `help:"Output format (table, json)" enum:"table,json" default:"table"`
	WithCosts bool   `help:"Include pricing information"`
}

func (c *ModelsCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(cli, false)
	if err != nil {
		return err
	}
	defer a.Close()

	models, err := a.ModelProvider().ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	models = orclient.FilterModels(models, c.Query, c.Tools)

	if c.Format == "json" {
		return printModelsJSON(os.Stdout, models)
	}
	if len(models) == 0 {
		fmt.Println("No models found.")
		return nil
	}
	return printModelsTable(os.Stdout, models, c.WithCosts, a.Config.Agent.Model)
}

func printModelsJSON(out io.Writer, models []*aisdk.ModelInfo) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(models)
}

// printModelsTable prints one row per model; the configured model is starred.
func printModelsTable(out io.Writer, models []*aisdk.ModelInfo, withCosts bool, current string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if withCosts {
		fmt.Fprintln(w, "\tID\tName\tContext\tTools\tPrompt Cost\tCompletion Cost")
		fmt.Fprintln(w, "\t---\t----\t-------\t-----\t-----------\t---------------")
	} else {
		fmt.Fprintln(w, "\tID\tName\tContext\tTools")
		fmt.Fprintln(w, "\t---\t----\t-------\t-----")
	}

	for _, model := range models {
		marker := ""
		if model.ID == current {
			marker = "*"
		}
		tools := "no"
		if model.SupportsTools() {
			tools = "yes"
		}
		if !withCosts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", marker, model.ID, model.Name, model.ContextLength, tools)
			continue
		}

		promptCost, completionCost := "N/A", "N/A"
		if model.Pricing != nil {
			if model.Pricing.Prompt != "" {
				promptCost = model.Pricing.Prompt
			}
			if model.Pricing.Completion != "" {
				completionCost = model.Pricing.Completion
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			marker, model.ID, model.Name, model.ContextLength, tools, promptCost, completionCost)
	}

	return nil
}
