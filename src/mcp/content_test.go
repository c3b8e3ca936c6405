package mcp

import (
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultText(t *testing.T) {
	tests := []struct {
		name string
		res  *mcpsdk.CallToolResult
		want string
	}{
		{
			name: "nil",
			res:  nil,
			want: "",
		},
		{
			name: "joined text",
			res: &mcpsdk.CallToolResult{Content: []mcpsdk.Content{
				&mcpsdk.TextContent{Text: "first"},
				&mcpsdk.TextContent{Text: "second"},
			}},
			want: "first\n\nsecond",
		},
		{
			name: "image placeholder",
			res: &mcpsdk.CallToolResult{Content: []mcpsdk.Content{
				&mcpsdk.ImageContent{MIMEType: "image/png", Data: []byte{1, 2, 3}},
			}},
			want: "[image: image/png, 3 bytes]",
		},
		{
			name: "resource link",
			res: &mcpsdk.CallToolResult{Content: []mcpsdk.Content{
				&mcpsdk.ResourceLink{URI: "file:///tmp/out.txt", Name: "out.txt"},
			}},
			want: "[out.txt](file:///tmp/out.txt)",
		},
		{
			name: "plain embedded resource",
			res: &mcpsdk.CallToolResult{Content: []mcpsdk.Content{
				&mcpsdk.EmbeddedResource{Resource: &mcpsdk.ResourceContents{URI: "x://y", MIMEType: "text/plain", Text: "body"}},
			}},
			want: "body",
		},
		{
			name: "structured fallback",
			res:  &mcpsdk.CallToolResult{StructuredContent: map[string]any{"ok": true}},
			want: `{"ok":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultText(tt.res))
		})
	}
}

func TestHTMLToMarkdown(t *testing.T) {
	out, err := HTMLToMarkdown(`<html><head><script>var x = 1;</script></head><body><h2>Title</h2><p>Visit <a href="https://example.com">here</a>.</p></body></html>`)
	require.NoError(t, err)
	assert.Contains(t, out, "## Title")
	assert.Contains(t, out, "[here](https://example.com)")
	assert.NotContains(t, out, "var x")
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, looksLikeHTML("  <!DOCTYPE html><html></html>"))
	assert.True(t, looksLikeHTML("<html><body>x</body></html>"))
	assert.False(t, looksLikeHTML("a < b and c > d"))
}
