package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/elee1766/mcpchat/src/schema"
)

const basePrompt = `You are a helpful assistant connected to a remote MCP tool server.

Use the tools listed below when they help answer the user's request. Call a
tool only with arguments that match its parameters. When a tool reports an
error, either retry with corrected arguments or explain the failure.

Answer in plain text or GitHub-flavored markdown. Keep answers short and
direct; the user reads them in a chat window.`

// SystemPrompt builds the system prompt describing the tools in toolbox.
func SystemPrompt(toolbox *DefaultToolbox) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)
	sb.WriteString("\n\nToday's date: ")
	sb.WriteString(time.Now().Format("2006-01-02"))

	if toolbox == nil || toolbox.Len() == 0 {
		sb.WriteString("\n\nNo tools are available in this session.")
		return sb.String()
	}

	sb.WriteString("\n\n# Available tools\n")
	sb.WriteString(formatToolsForPrompt(toolbox.Tools()))
	return sb.String()
}

func formatToolsForPrompt(tools []Tool) string {
	var sb strings.Builder
	for _, tool := range tools {
		fmt.Fprintf(&sb, "\n## %s\n", tool.GetName())
		if desc := strings.TrimSpace(tool.GetDescription()); desc != "" {
			sb.WriteString(desc)
			sb.WriteString("\n")
		}
		sb.WriteString("Parameters:\n")
		for _, line := range strings.Split(schema.Summarize(tool.GetParameters()), "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
