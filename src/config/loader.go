package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and merging configurations from multiple sources
type Loader struct {
	fs         afero.Fs
	precedence ConfigPrecedence
	validator  *Validator
	getenv     func(string) string
}

// NewLoader creates a new configuration loader reading from fs.
func NewLoader(fs afero.Fs, precedence ConfigPrecedence) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{
		fs:         fs,
		precedence: precedence,
		validator:  NewValidator(),
		getenv:     os.Getenv,
	}
}

// Load starts from DefaultConfig and applies every configuration file that
// exists, lowest precedence first, then environment overrides. Each file only
// overrides the keys it sets. The result is validated.
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	sources := []struct {
		paths  []string
		source ConfigSource
	}{
		{l.precedence.SystemConfig, SourceSystem},
		{l.precedence.UserConfig, SourceUser},
		{l.precedence.ProjectConfig, SourceProject},
	}

	for _, src := range sources {
		for _, path := range src.paths {
			if path == "" {
				continue
			}
			err := l.applyFile(config, path)
			if err == nil || errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s config from %s: %w", src.source, path, err)
		}
	}

	if path := l.precedence.ExplicitConfig; path != "" {
		if err := l.applyFile(config, path); err != nil {
			return nil, fmt.Errorf("failed to load %s config from %s: %w", SourceExplicit, path, err)
		}
	}

	// Apply environment variable overrides
	if l.precedence.EnvironmentPrefix != "" {
		if err := l.applyEnvironmentOverrides(config); err != nil {
			return nil, err
		}
	}

	// Validate the final configuration
	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyFile decodes path on top of config.
func (l *Loader) applyFile(config *Config, path string) error {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	if isYAML(path) {
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// SaveFile saves configuration to a file, as YAML or JSON by extension.
func (l *Loader) SaveFile(config *Config, path string) error {
	// Validate before saving
	if err := l.validator.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// Ensure directory exists
	if err := l.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(l.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to config
func (l *Loader) applyEnvironmentOverrides(config *Config) error {
	prefix := l.precedence.EnvironmentPrefix + "_"
	env := func(name string) string {
		return strings.TrimSpace(l.getenv(prefix + name))
	}

	if model := env("MODEL"); model != "" {
		config.Agent.Model = model
	}
	if provider := env("PROVIDER"); provider != "" {
		config.API.Provider = provider
	}
	if baseURL := env("BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if keyVar := env("API_KEY_ENV_VAR"); keyVar != "" {
		config.API.APIKeyEnvVar = keyVar
	}
	if endpoint := env("DEFAULT_ENDPOINT"); endpoint != "" {
		config.DefaultEndpoint = endpoint
	}
	if level := env("LOG_LEVEL"); level != "" {
		config.Observability.Logging.Level = level
	}
	if listen := env("LISTEN"); listen != "" {
		config.Server.Listen = listen
	}
	if db := env("DATABASE"); db != "" {
		config.Storage.DatabasePath = db
	}

	if v := env("SIMULATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSIMULATE: %w", prefix, err)
		}
		config.Agent.Simulate = b
	}
	if v := env("AUTO_CONNECT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sAUTO_CONNECT: %w", prefix, err)
		}
		config.AutoConnect = &b
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
