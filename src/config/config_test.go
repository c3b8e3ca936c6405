package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func testLoader(fs afero.Fs, env map[string]string, explicit string) *Loader {
	l := NewLoader(fs, ConfigPrecedence{
		SystemConfig:      candidates("/etc/mcpchat", "config"),
		UserConfig:        candidates("/home/user/.config/mcpchat", "config"),
		ProjectConfig:     candidates("/work", ".mcpchat"),
		ExplicitConfig:    explicit,
		EnvironmentPrefix: "MCPCHAT",
	})
	l.getenv = func(k string) string { return env[k] }
	return l
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", config.Version)
	}
	if config.API.APIKeyEnvVar != "OPENROUTER_API_KEY" {
		t.Errorf("Expected OPENROUTER_API_KEY, got %s", config.API.APIKeyEnvVar)
	}
	if !config.ShouldAutoConnect() {
		t.Error("Expected auto connect by default")
	}

	ep, err := config.ResolveEndpoint("")
	if err != nil {
		t.Fatalf("ResolveEndpoint() error = %v", err)
	}
	if ep.Name != "MCP Tools Collection" || ep.URL != DefaultEndpointURL {
		t.Errorf("Unexpected default endpoint %+v", ep)
	}

	if err := NewValidator().Validate(config); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	validator := NewValidator()
	hot := 3.0

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"invalid temperature", func(c *Config) { c.Agent.Temperature = &hot }, "Temperature"},
		{"negative max tokens", func(c *Config) { c.Agent.MaxTokens = -1 }, "MaxTokens"},
		{"missing model", func(c *Config) { c.Agent.Model = "" }, "Model"},
		{"unknown provider", func(c *Config) { c.API.Provider = "carrier-pigeon" }, "provider"},
		{"bad log level", func(c *Config) { c.Observability.Logging.Level = "loud" }, "log_level"},
		{"bad log format", func(c *Config) { c.Observability.Logging.Format = "xml" }, "log_format"},
		{"bad listen address", func(c *Config) { c.Server.Listen = "nowhere" }, "hostname_port"},
		{
			"endpoint without scheme",
			func(c *Config) { c.Endpoints = append(c.Endpoints, Endpoint{Name: "x", URL: "example.com/sse"}) },
			"endpoint_url",
		},
		{
			"duplicate endpoint",
			func(c *Config) { c.Endpoints = append(c.Endpoints, Endpoint{Name: "mcp tools collection", URL: "https://a/sse"}) },
			"duplicate endpoint",
		},
		{"dangling default", func(c *Config) { c.DefaultEndpoint = "Nope" }, "default endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := validator.Validate(c)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			var vErr ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Expected ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoaderLayering(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/etc/mcpchat/config.json", []byte(`{
		"api": {"timeout": "20s"},
		"agent": {"model": "system/model", "max_steps": 4}
	}`), 0o644)
	afero.WriteFile(fs, "/home/user/.config/mcpchat/config.yaml", []byte(`
agent:
  model: user/model
mcp:
  connect_timeout: 5s
endpoints:
  - name: Local
    url: http://localhost:7860/gradio_api/mcp/sse
default_endpoint: local
`), 0o644)
	afero.WriteFile(fs, "/work/.mcpchat.yml", []byte("auto_connect: false\n"), 0o644)

	config, err := testLoader(fs, nil, "").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Agent.Model != "user/model" {
		t.Errorf("Expected user model to win, got %s", config.Agent.Model)
	}
	if config.Agent.MaxSteps != 4 {
		t.Errorf("Expected max_steps from system config, got %d", config.Agent.MaxSteps)
	}
	if config.API.Timeout.Std() != 20*time.Second {
		t.Errorf("Expected 20s timeout, got %s", config.API.Timeout)
	}
	if config.MCP.ConnectTimeout.Std() != 5*time.Second {
		t.Errorf("Expected 5s connect timeout, got %s", config.MCP.ConnectTimeout)
	}
	if config.ShouldAutoConnect() {
		t.Error("Expected project config to disable auto connect")
	}
	if config.API.APIKeyEnvVar != DefaultAPIKeyEnvVar {
		t.Errorf("Expected untouched default key var, got %s", config.API.APIKeyEnvVar)
	}

	ep, err := config.ResolveEndpoint("")
	if err != nil {
		t.Fatalf("ResolveEndpoint() error = %v", err)
	}
	if ep.URL != "http://localhost:7860/gradio_api/mcp/sse" {
		t.Errorf("Unexpected default endpoint %+v", ep)
	}
}

func TestLoaderExplicitFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	if _, err := testLoader(fs, nil, "/missing.yaml").Load(); err == nil {
		t.Error("Expected error for missing explicit config")
	}

	afero.WriteFile(fs, "/cfg/custom.json", []byte(`{"agent": {"run_timeout": 90}}`), 0o644)
	config, err := testLoader(fs, nil, "/cfg/custom.json").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if config.Agent.RunTimeout.Std() != 90*time.Second {
		t.Errorf("Expected numeric duration as seconds, got %s", config.Agent.RunTimeout)
	}
}

func TestLoaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad json", "/work/.mcpchat.json", `{"agent":`, "failed to parse JSON"},
		{"bad yaml", "/work/.mcpchat.yaml", "agent: [", "failed to parse YAML"},
		{"bad duration", "/work/.mcpchat.yaml", "api:\n  timeout: soon\n", "invalid duration"},
		{"invalid value", "/work/.mcpchat.json", `{"observability":{"logging":{"level":"chatty"}}}`, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			afero.WriteFile(fs, tt.file, []byte(tt.content), 0o644)
			_, err := testLoader(fs, nil, "").Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	env := map[string]string{
		"MCPCHAT_MODEL":           "env/model",
		"MCPCHAT_API_KEY_ENV_VAR": "MY_KEY",
		"MCPCHAT_SIMULATE":        "true",
		"MCPCHAT_AUTO_CONNECT":    "0",
		"MCPCHAT_LOG_LEVEL":       "debug",
	}
	config, err := testLoader(afero.NewMemMapFs(), env, "").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Agent.Model != "env/model" {
		t.Errorf("Expected env model, got %s", config.Agent.Model)
	}
	if config.API.APIKeyEnvVar != "MY_KEY" {
		t.Errorf("Expected MY_KEY, got %s", config.API.APIKeyEnvVar)
	}
	if !config.Agent.Simulate {
		t.Error("Expected simulate from env")
	}
	if config.ShouldAutoConnect() {
		t.Error("Expected auto connect disabled from env")
	}
	if config.Observability.Logging.Level != "debug" {
		t.Errorf("Expected debug log level, got %s", config.Observability.Logging.Level)
	}

	_, err = testLoader(afero.NewMemMapFs(), map[string]string{"MCPCHAT_SIMULATE": "maybe"}, "").Load()
	if err == nil {
		t.Error("Expected error for unparseable boolean")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := testLoader(fs, nil, "/out/config.yaml")

	config := DefaultConfig()
	config.Agent.Model = "saved/model"
	if err := l.SaveFile(config, "/out/config.yaml"); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Agent.Model != "saved/model" {
		t.Errorf("Expected saved/model, got %s", loaded.Agent.Model)
	}
	if loaded.API.Timeout != config.API.Timeout {
		t.Errorf("Expected timeout %s, got %s", config.API.Timeout, loaded.API.Timeout)
	}
}

func TestResolveEndpoint(t *testing.T) {
	config := DefaultConfig()

	tests := []struct {
		input   string
		wantURL string
		wantErr bool
	}{
		{"", DefaultEndpointURL, false},
		{"mcp tools collection", DefaultEndpointURL, false},
		{"https://other.example/sse", "https://other.example/sse", false},
		{DefaultEndpointURL, DefaultEndpointURL, false},
		{"not-a-server", "", true},
		{"ftp://example.com/sse", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ep, err := config.ResolveEndpoint(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveEndpoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if ep.URL != tt.wantURL {
				t.Errorf("ResolveEndpoint(%q) = %s, want %s", tt.input, ep.URL, tt.wantURL)
			}
		})
	}
}
