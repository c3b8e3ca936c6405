package agent

import (
	"context"

	"github.com/elee1766/mcpchat/src/aisdk"
	"github.com/elee1766/mcpchat/src/schema"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// Tool is the interface that all tools must implement
type Tool interface {
	// GetType returns the tool type (always "function" for now)
	GetType() string

	GetName() string
	GetDescription() string

	// GetParameters returns the JSON schema for the tool's parameters
	GetParameters() *jsonschema.Schema

	// Execute runs the tool with the given call
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}

// FuncTool is a Tool backed by a plain function.
type FuncTool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Fn          ToolExecutor
}

var _ Tool = (*FuncTool)(nil)

func (t *FuncTool) GetType() string                   { return "function" }
func (t *FuncTool) GetName() string                   { return t.Name }
func (t *FuncTool) GetDescription() string            { return t.Description }
func (t *FuncTool) GetParameters() *jsonschema.Schema { return t.Parameters }

func (t *FuncTool) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	return t.Fn(ctx, call)
}

// ToChatTool converts a Tool to the request format of chat completion APIs.
func ToChatTool(tool Tool) *aisdk.ChatTool {
	params := tool.GetParameters()
	if params == nil {
		params = emptyObjectSchema()
	}
	return &aisdk.ChatTool{
		Type: tool.GetType(),
		Function: aisdk.ChatToolFunction{
			Name:        tool.GetName(),
			Description: tool.GetDescription(),
			Parameters:  params,
		},
	}
}

// ToChatTools converts a slice of Tool interfaces to ChatTools
func ToChatTools(tools []Tool) []*aisdk.ChatTool {
	chatTools := make([]*aisdk.ChatTool, len(tools))
	for i, tool := range tools {
		chatTools[i] = ToChatTool(tool)
	}
	return chatTools
}

func emptyObjectSchema() *jsonschema.Schema {
	return schema.CreateObjectSchema(nil, nil)
}
