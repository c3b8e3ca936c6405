package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates configuration values using go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	v := validator.New()

	// Register custom validation functions
	v.RegisterValidation("provider", validateProvider)
	v.RegisterValidation("log_level", validateLogLevel)
	v.RegisterValidation("log_format", validateLogFormat)
	v.RegisterValidation("endpoint_url", validateEndpointURL)

	return &Validator{
		validate: v,
	}
}

// Validate validates a complete configuration
func (v *Validator) Validate(config *Config) error {
	// Set default version if empty
	if config.Version == "" {
		config.Version = "1.0"
	}

	if err := v.validate.Struct(config); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			// Report the first failure in our own format
			for _, e := range validationErrors {
				return ValidationError{
					Field:   e.Namespace(),
					Message: fmt.Sprintf("%s: validation failed on tag '%s' with value '%v'", e.Namespace(), e.Tag(), e.Value()),
					Value:   e.Value(),
				}
			}
		}
		return err
	}

	seen := make(map[string]bool, len(config.Endpoints))
	for _, ep := range config.Endpoints {
		key := strings.ToLower(ep.Name)
		if seen[key] {
			return ValidationError{
				Field:   "Endpoints",
				Message: fmt.Sprintf("duplicate endpoint name %q", ep.Name),
				Value:   ep.Name,
			}
		}
		seen[key] = true
	}

	if config.DefaultEndpoint != "" {
		if _, ok := config.FindEndpoint(config.DefaultEndpoint); !ok {
			return ValidationError{
				Field:   "DefaultEndpoint",
				Message: fmt.Sprintf("default endpoint %q is not among the configured endpoints", config.DefaultEndpoint),
				Value:   config.DefaultEndpoint,
			}
		}
	}

	return nil
}

// Custom validation functions for go-playground/validator

// validateProvider validates API provider values
func validateProvider(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Allow empty, will be filled by defaults
	}
	validProviders := []string{"openrouter", "openai", "local"}
	return contains(validProviders, value)
}

// validateLogLevel validates log level values
func validateLogLevel(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	if value == "" {
		return true
	}
	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	return contains(validLevels, value)
}

// validateLogFormat validates log format values
func validateLogFormat(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	validFormats := []string{"json", "text"}
	return contains(validFormats, value)
}

// validateEndpointURL accepts absolute http(s) URLs with a host
func validateEndpointURL(fl validator.FieldLevel) bool {
	return IsEndpointURL(fl.Field().String())
}

// IsEndpointURL reports whether s can be dialed as an MCP SSE endpoint.
func IsEndpointURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
