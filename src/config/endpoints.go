package config

import (
	"fmt"
	"strings"
)

// FindEndpoint looks up a configured endpoint by name, ignoring case.
func (c *Config) FindEndpoint(name string) (Endpoint, bool) {
	for _, ep := range c.Endpoints {
		if strings.EqualFold(ep.Name, strings.TrimSpace(name)) {
			return ep, true
		}
	}
	return Endpoint{}, false
}

// ResolveEndpoint maps a configured endpoint name or a raw http(s) URL to an
// Endpoint. An empty argument resolves to the default endpoint.
func (c *Config) ResolveEndpoint(nameOrURL string) (Endpoint, error) {
	nameOrURL = strings.TrimSpace(nameOrURL)
	if nameOrURL == "" {
		if c.DefaultEndpoint == "" {
			return Endpoint{}, fmt.Errorf("no endpoint given and no default endpoint configured")
		}
		nameOrURL = c.DefaultEndpoint
	}

	if ep, ok := c.FindEndpoint(nameOrURL); ok {
		return ep, nil
	}

	if IsEndpointURL(nameOrURL) {
		for _, ep := range c.Endpoints {
			if ep.URL == nameOrURL {
				return ep, nil
			}
		}
		return Endpoint{Name: nameOrURL, URL: nameOrURL}, nil
	}

	return Endpoint{}, fmt.Errorf("unknown endpoint %q: not a configured name or http(s) URL", nameOrURL)
}
