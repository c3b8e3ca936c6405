// Package aisdk holds the chat-completion types shared by the inference
// client and the agent loop.
package aisdk

import (
	"encoding/json"
	"time"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	// Name is required for tool responses to identify the function
	Name string `json:"name,omitempty"`
	// ToolCallID is required for tool responses to reference the original call
	ToolCallID string `json:"tool_call_id,omitempty"`
	// ToolCalls contains function calls requested by the assistant.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	CreatedAt time.Time  `json:"-"`
}

// ToolCall represents a function call request from the model (OpenAI format).
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // Always "function" for now
	Function FunctionCall `json:"function"`
}

// FunctionCall contains the function name and arguments.
type FunctionCall struct {
	Name string `json:"name"`
	// Arguments is the JSON-encoded argument object. Most providers send it as
	// a JSON string, some as a raw object; see ArgumentsJSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ArgumentsJSON returns the call arguments as a JSON object, unwrapping the
// string-encoded form used by OpenAI-compatible APIs.
func (f FunctionCall) ArgumentsJSON() json.RawMessage {
	if len(f.Arguments) == 0 {
		return json.RawMessage("{}")
	}
	if f.Arguments[0] == '"' {
		var s string
		if err := json.Unmarshal(f.Arguments, &s); err == nil {
			if s == "" {
				return json.RawMessage("{}")
			}
			return json.RawMessage(s)
		}
	}
	return f.Arguments
}

// ToolResponse is what a tool hands back to the agent loop.
type ToolResponse struct {
	Content []byte `json:"content"`
	IsError bool   `json:"is_error"`
}

// ChatCompletionRequest represents a request to the chat completions endpoint.
type ChatCompletionRequest struct {
	Model       string      `json:"model"`
	Messages    []*Message  `json:"messages"`
	Temperature *float64    `json:"temperature,omitempty"`
	MaxTokens   *int        `json:"max_tokens,omitempty"`
	Stream      bool        `json:"stream,omitempty"`
	Tools       []*ChatTool `json:"tools,omitempty"`
	ToolChoice  string      `json:"tool_choice,omitempty"` // "auto", "none", or specific tool
	User        string      `json:"user,omitempty"`
}

// ChatCompletionResponse represents a response from the chat completions endpoint.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice represents a single completion choice.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ModelInfo describes a model offered by the inference service.
type ModelInfo struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ContextLength int      `json:"context_length"`
	Pricing       *Pricing `json:"pricing,omitempty"`
	// SupportedParameters lists request parameters such as "tools".
	SupportedParameters []string `json:"supported_parameters,omitempty"`
}

// Pricing contains model pricing information from OpenRouter
type Pricing struct {
	Prompt     string `json:"prompt"`     // Cost per input token
	Completion string `json:"completion"` // Cost per output token
}

// SupportsTools reports whether the model advertises tool calling.
func (m *ModelInfo) SupportsTools() bool {
	for _, p := range m.SupportedParameters {
		if p == "tools" {
			return true
		}
	}
	return false
}
