package config

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for mcpchat
type Config struct {
	// Version of the configuration format
	Version string `json:"version" yaml:"version"`

	// API configuration for the inference service
	API APIConfig `json:"api" yaml:"api"`

	// Agent configuration
	Agent AgentConfig `json:"agent" yaml:"agent"`

	// MCP transport settings
	MCP MCPConfig `json:"mcp" yaml:"mcp"`

	// Endpoints are the known MCP servers, shown by `servers`.
	Endpoints []Endpoint `json:"endpoints,omitempty" yaml:"endpoints,omitempty" validate:"dive"`

	// DefaultEndpoint names the endpoint used when none is given.
	DefaultEndpoint string `json:"default_endpoint,omitempty" yaml:"default_endpoint,omitempty"`

	// AutoConnect connects to the default endpoint when a chat starts.
	AutoConnect *bool `json:"auto_connect,omitempty" yaml:"auto_connect,omitempty"`

	// Examples are suggested prompts listed by /examples.
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`

	// Server configures the HTTP shell.
	Server ServerConfig `json:"server" yaml:"server"`

	// Storage configures the transcript archive.
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// UI preferences for the terminal
	UI UIConfig `json:"ui" yaml:"ui"`

	// Observability configuration
	Observability ObservabilityConfig `json:"observability,omitempty" yaml:"observability,omitempty"`
}

// Endpoint names a remote MCP server.
type Endpoint struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url" yaml:"url" validate:"required,endpoint_url"`
}

// APIConfig holds inference API configuration
type APIConfig struct {
	// Provider specifies the AI provider (e.g., "openrouter")
	Provider string `json:"provider" yaml:"provider" validate:"provider"`

	// BaseURL overrides the default API endpoint
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`

	// APIKeyEnvVar names the environment variable holding the credential.
	// The key itself is never stored in configuration.
	APIKeyEnvVar string `json:"api_key_env_var,omitempty" yaml:"api_key_env_var,omitempty"`

	// Timeout for one API request
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" validate:"min=0"`

	// RetryCount is the number of attempts per request
	RetryCount int `json:"retry_count,omitempty" yaml:"retry_count,omitempty" validate:"min=0,max=10"`

	// SiteURL and SiteName are sent as ranking headers
	SiteURL  string `json:"site_url,omitempty" yaml:"site_url,omitempty" validate:"omitempty,url"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`

	// RateLimit configuration
	RateLimit RateLimitConfig `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// RateLimitConfig defines client-side rate limiting
type RateLimitConfig struct {
	RequestsPerMinute int `json:"requests_per_minute" yaml:"requests_per_minute" validate:"min=0"`
	BurstSize         int `json:"burst_size" yaml:"burst_size" validate:"min=0"`
}

// AgentConfig defines the agent bound to each session
type AgentConfig struct {
	// Model to use
	Model string `json:"model" yaml:"model" validate:"required"`

	// SystemPrompt replaces the generated prompt when set
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`

	// Temperature for model responses
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"omitempty,min=0,max=2"`

	// MaxTokens for model responses, zero leaves it to the provider
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" validate:"min=0"`

	// MaxSteps bounds model round trips per message
	MaxSteps int `json:"max_steps,omitempty" yaml:"max_steps,omitempty" validate:"min=0,max=100"`

	// RunTimeout bounds one message
	RunTimeout Duration `json:"run_timeout,omitempty" yaml:"run_timeout,omitempty" validate:"min=0"`

	// Simulate forces the simulated backend
	Simulate bool `json:"simulate,omitempty" yaml:"simulate,omitempty"`
}

// MCPConfig defines MCP transport settings
type MCPConfig struct {
	ConnectTimeout Duration `json:"connect_timeout,omitempty" yaml:"connect_timeout,omitempty" validate:"min=0"`
	KeepAlive      Duration `json:"keep_alive,omitempty" yaml:"keep_alive,omitempty" validate:"min=0"`
}

// ServerConfig configures `mcpchat serve`
type ServerConfig struct {
	Listen string `json:"listen,omitempty" yaml:"listen,omitempty" validate:"omitempty,hostname_port"`
}

// StorageConfig defines transcript storage
type StorageConfig struct {
	// DatabasePath overrides the default archive location
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty"`
}

// UIConfig defines terminal preferences
type UIConfig struct {
	// WrapWidth for assistant replies, zero uses the terminal default
	WrapWidth int `json:"wrap_width,omitempty" yaml:"wrap_width,omitempty" validate:"min=0"`

	// SyntaxStyle is a chroma style name for code blocks
	SyntaxStyle string `json:"syntax_style,omitempty" yaml:"syntax_style,omitempty"`

	// Color toggles styled output
	Color *bool `json:"color,omitempty" yaml:"color,omitempty"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	// Logging configuration
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level,omitempty" yaml:"level,omitempty" validate:"log_level"`

	// Format is the output format (text, json)
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"log_format"`

	// File output configuration
	File FileLoggingConfig `json:"file,omitempty" yaml:"file,omitempty"`
}

// FileLoggingConfig defines file logging configuration
type FileLoggingConfig struct {
	// Path to log file
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// MaxSize in MB before rotation
	MaxSize int `json:"max_size,omitempty" yaml:"max_size,omitempty" validate:"min=0"`

	// MaxBackups to keep
	MaxBackups int `json:"max_backups,omitempty" yaml:"max_backups,omitempty" validate:"min=0"`

	// MaxAge in days
	MaxAge int `json:"max_age,omitempty" yaml:"max_age,omitempty" validate:"min=0"`

	// Compress rotated files
	Compress bool `json:"compress" yaml:"compress"`
}

// ShouldAutoConnect reports whether chats connect on start.
func (c *Config) ShouldAutoConnect() bool {
	return c.AutoConnect == nil || *c.AutoConnect
}

// ColorEnabled reports whether styled output is on.
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}

// Duration is a time.Duration written as "30s" in config files. Plain
// numbers are read as seconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var v any
	if err := value.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", x, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(x * float64(time.Second))
	case int:
		*d = Duration(time.Duration(x) * time.Second)
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e ValidationError) Error() string {
	return e.Message
}

// ConfigSource indicates where a configuration value came from
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceSystem   ConfigSource = "system"
	SourceUser     ConfigSource = "user"
	SourceProject  ConfigSource = "project"
	SourceExplicit ConfigSource = "explicit"
)

// ConfigPrecedence lists the files consulted, lowest precedence first. Each
// level may name several candidates (for example .json and .yaml); every one
// that exists is applied.
type ConfigPrecedence struct {
	SystemConfig  []string
	UserConfig    []string
	ProjectConfig []string
	// ExplicitConfig must exist when set.
	ExplicitConfig string

	EnvironmentPrefix string
}
