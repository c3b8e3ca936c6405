package config

import (
	"time"
)

const (
	// DefaultEndpointName is the built-in MCP server.
	DefaultEndpointName = "MCP Tools Collection"
	// DefaultEndpointURL is where DefaultEndpointName lives.
	DefaultEndpointURL = "https://abidlabs-mcp-tool-http.hf.space/gradio_api/mcp/sse"

	DefaultAPIKeyEnvVar = "OPENROUTER_API_KEY"
	DefaultModel        = "google/gemini-2.5-flash"
	DefaultListen       = "127.0.0.1:7860"
)

// DefaultConfig returns a default configuration with sensible defaults
func DefaultConfig() *Config {
	autoConnect := true
	return &Config{
		Version: "1.0",
		API: APIConfig{
			Provider:     "openrouter",
			APIKeyEnvVar: DefaultAPIKeyEnvVar,
			Timeout:      Duration(60 * time.Second),
			RetryCount:   3,
			RateLimit: RateLimitConfig{
				RequestsPerMinute: 60,
				BurstSize:         5,
			},
		},

		Agent: AgentConfig{
			Model:      DefaultModel,
			MaxSteps:   8,
			RunTimeout: Duration(3 * time.Minute),
		},

		MCP: MCPConfig{
			ConnectTimeout: Duration(30 * time.Second),
		},

		Endpoints: []Endpoint{
			{Name: DefaultEndpointName, URL: DefaultEndpointURL},
		},
		DefaultEndpoint: DefaultEndpointName,
		AutoConnect:     &autoConnect,

		Examples: []string{
			"What is the prime factorization of 68?",
			"Calculate the square root of 144",
			"Convert 'Hello World' to base64",
			"What tools are available?",
			"Help me with a math problem",
		},

		Server: ServerConfig{
			Listen: DefaultListen,
		},

		UI: UIConfig{
			SyntaxStyle: "monokai",
		},

		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "warn",
				Format: "text",
				File: FileLoggingConfig{
					MaxSize:    10,
					MaxBackups: 3,
					MaxAge:     28,
				},
			},
		},
	}
}
