// Package mcptest runs an in-process MCP server over SSE for tests.
package mcptest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// PageHTML is the document returned by the "page" tool.
const PageHTML = `<!DOCTYPE html><html><head><style>body{color:red}</style>
<script>alert("x")</script></head><body><h1>Status</h1><p>All <b>good</b>.</p></body></html>`

type addInput struct {
	A float64 `json:"a" jsonschema:"first number"`
	B float64 `json:"b" jsonschema:"second number"`
}

type echoInput struct {
	Text string `json:"text" jsonschema:"text to echo back"`
}

type pageInput struct{}

// NewMCPServer returns a server with three tools: add, echo and page.
// echo fails with a tool error when given empty text.
func NewMCPServer() *mcpsdk.Server {
	srv := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "mcptest", Version: "1.0.0"}, nil)

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "add",
		Description: "Add two numbers",
	}, func(_ context.Context, _ *mcpsdk.CallToolRequest, in addInput) (*mcpsdk.CallToolResult, any, error) {
		sum := strconv.FormatFloat(in.A+in.B, 'f', -1, 64)
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: sum}},
		}, nil, nil
	})

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "echo",
		Description: "Echo text back",
	}, func(_ context.Context, _ *mcpsdk.CallToolRequest, in echoInput) (*mcpsdk.CallToolResult, any, error) {
		if in.Text == "" {
			return nil, nil, errors.New("nothing to echo")
		}
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: in.Text}},
		}, nil, nil
	})

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        "page",
		Description: "Return a status page",
	}, func(_ context.Context, _ *mcpsdk.CallToolRequest, _ pageInput) (*mcpsdk.CallToolResult, any, error) {
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.EmbeddedResource{
				Resource: &mcpsdk.ResourceContents{
					URI:      "status://page",
					MIMEType: "text/html",
					Text:     PageHTML,
				},
			}},
		}, nil, nil
	})

	return srv
}

// NewServer starts an SSE endpoint serving NewMCPServer and returns it. The
// endpoint URL is srv.URL. The server is closed when the test ends.
func NewServer(t testing.TB) *httptest.Server {
	t.Helper()
	mcpSrv := NewMCPServer()
	handler := mcpsdk.NewSSEHandler(func(*http.Request) *mcpsdk.Server {
		return mcpSrv
	}, nil)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}
