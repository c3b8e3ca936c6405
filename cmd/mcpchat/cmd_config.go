package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elee1766/mcpchat/src/config"
)

// ConfigCmd manages configuration files
type ConfigCmd struct {
	Init  ConfigInitCmd  `cmd:"" help:"Write a configuration file with the defaults"`
	Show  ConfigShowCmd  `cmd:"" help:"Print the effective configuration"`
	Paths ConfigPathsCmd `cmd:"" help:"List the configuration files that are read, in order"`
}

type ConfigInitCmd struct {
	Path  string `arg:"" optional:"" type:"path" help:"Where to write (defaults to the user config file)"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run() error {
	path := c.Path
	if path == "" {
		path = config.UserConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("invalid target: %s already exists (use --force to overwrite)", path)
	}

	loader := config.NewLoader(nil, config.GetConfigPaths())
	if err := loader.SaveFile(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

type ConfigShowCmd struct {
	Format string `help:"Output format (yaml, json)" enum:"yaml,json" default:"yaml"`
}

func (c *ConfigShowCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(cfg); err != nil {
			return err
		}
	} else {
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(cfg); err != nil {
			return err
		}
		encoder.Close()
	}

	keyVar := cfg.API.APIKeyEnvVar
	if key := os.Getenv(keyVar); key != "" {
		fmt.Fprintf(os.Stderr, "# %s is set (%s)\n", keyVar, maskAPIKey(key))
	} else {
		fmt.Fprintf(os.Stderr, "# %s is not set\n", keyVar)
	}
	return nil
}

type ConfigPathsCmd struct{}

func (c *ConfigPathsCmd) Run(cli *CLI) error {
	precedence := config.GetConfigPaths()
	groups := []struct {
		source config.ConfigSource
		paths  []string
	}{
		{config.SourceSystem, precedence.SystemConfig},
		{config.SourceUser, precedence.UserConfig},
		{config.SourceProject, precedence.ProjectConfig},
	}
	if cli.Config != "" {
		groups = append(groups, struct {
			source config.ConfigSource
			paths  []string
		}{config.SourceExplicit, []string{cli.Config}})
	}

	for _, g := range groups {
		for _, p := range g.paths {
			state := "missing"
			if _, err := os.Stat(p); err == nil {
				state = "found"
			}
			fmt.Printf("%-8s %-8s %s\n", g.source, state, p)
		}
	}
	fmt.Printf("%-8s %-8s %s_*\n", "env", "", precedence.EnvironmentPrefix)
	return nil
}
