package orclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/elee1766/mcpchat/src/aisdk"
)

var _ aisdk.ModelClient = (*ModelClient)(nil)

// ModelClient represents a client bound to a specific model
type ModelClient struct {
	client *Client
	model  string
}

// Model creates a ModelClient bound to the specified model. The name is not
// checked against the model list; an unknown model surfaces as an API error
// on the first completion.
func (c *Client) Model(ctx context.Context, modelName string) (aisdk.ModelClient, error) {
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		return nil, fmt.Errorf("model name is required")
	}
	return &ModelClient{client: c, model: modelName}, nil
}

// CreateChatCompletion creates a chat completion with the bound model
func (mc *ModelClient) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	// Override the model in the request
	req.Model = mc.model
	return mc.client.createChatCompletion(ctx, req)
}

// ModelName returns the bound model ID.
func (mc *ModelClient) ModelName() string {
	return mc.model
}
