package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elee1766/mcpchat/src/agent"
	"github.com/elee1766/mcpchat/src/aisdk"
	"github.com/elee1766/mcpchat/src/schema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// RemoteTool exposes one tool of an MCP server through the agent.Tool interface.
type RemoteTool struct {
	conn   *Conn
	tool   *mcpsdk.Tool
	params *jsonschema.Schema
}

var _ agent.Tool = (*RemoteTool)(nil)

// NewRemoteTool wraps tool, converting its input schema.
func NewRemoteTool(conn *Conn, tool *mcpsdk.Tool) (*RemoteTool, error) {
	params, err := schema.FromValue(tool.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", tool.Name, err)
	}
	return &RemoteTool{conn: conn, tool: tool, params: params}, nil
}

func (t *RemoteTool) GetType() string { return "function" }

func (t *RemoteTool) GetName() string { return t.tool.Name }

func (t *RemoteTool) GetDescription() string {
	if t.tool.Description == "" {
		return t.tool.Title
	}
	return t.tool.Description
}

func (t *RemoteTool) GetParameters() *jsonschema.Schema { return t.params }

// Execute forwards the call to the server. Tool-level failures reported by
// the server come back as an error response, not a Go error.
func (t *RemoteTool) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	var args map[string]any
	if err := json.Unmarshal(call.Function.ArgumentsJSON(), &args); err != nil {
		return &aisdk.ToolResponse{
			Content: []byte(fmt.Sprintf("invalid arguments: %v", err)),
			IsError: true,
		}, nil
	}

	res, err := t.conn.CallTool(ctx, t.tool.Name, args)
	if err != nil {
		return nil, err
	}

	return &aisdk.ToolResponse{
		Content: []byte(ResultText(res)),
		IsError: res.IsError,
	}, nil
}

// Toolbox builds a toolbox holding every tool of conn.
func Toolbox(conn *Conn) (*agent.DefaultToolbox, error) {
	toolbox := agent.NewToolbox[agent.Tool]()
	for _, tool := range conn.Tools() {
		rt, err := NewRemoteTool(conn, tool)
		if err != nil {
			return nil, err
		}
		if err := toolbox.RegisterTool(rt); err != nil {
			return nil, err
		}
	}
	return toolbox, nil
}
