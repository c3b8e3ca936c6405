package orclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/elee1766/mcpchat/src/aisdk"
)

// ModelsResponse represents the response from the OpenRouter models API
type ModelsResponse struct {
	Data []*aisdk.ModelInfo `json:"data"`
}

// ListModels returns all models offered by the service, sorted by ID.
func (c *Client) ListModels(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleError(resp)
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	sort.Slice(modelsResp.Data, func(i, j int) bool {
		return modelsResp.Data[i].ID < modelsResp.Data[j].ID
	})
	return modelsResp.Data, nil
}

// FilterModels keeps models whose ID or name contains query
// (case-insensitive), optionally only those that support tool calling.
func FilterModels(models []*aisdk.ModelInfo, query string, toolsOnly bool) []*aisdk.ModelInfo {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]*aisdk.ModelInfo, 0, len(models))
	for _, m := range models {
		if toolsOnly && !m.SupportsTools() {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(m.ID), query) &&
			!strings.Contains(strings.ToLower(m.Name), query) {
			continue
		}
		out = append(out, m)
	}
	return out
}
