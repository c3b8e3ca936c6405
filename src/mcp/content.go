package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResultText flattens a tool result into the text handed back to the model.
// Text parts are joined with blank lines, HTML is converted to Markdown and
// binary parts are replaced with a short placeholder.
func ResultText(res *mcpsdk.CallToolResult) string {
	if res == nil {
		return ""
	}

	parts := make([]string, 0, len(res.Content))
	for _, c := range res.Content {
		if s := contentText(c); s != "" {
			parts = append(parts, s)
		}
	}

	if len(parts) == 0 && res.StructuredContent != nil {
		if b, err := json.Marshal(res.StructuredContent); err == nil {
			parts = append(parts, string(b))
		}
	}

	return strings.Join(parts, "\n\n")
}

func contentText(c mcpsdk.Content) string {
	switch v := c.(type) {
	case *mcpsdk.TextContent:
		if looksLikeHTML(v.Text) {
			return htmlOrRaw(v.Text)
		}
		return v.Text
	case *mcpsdk.ImageContent:
		return fmt.Sprintf("[image: %s, %d bytes]", v.MIMEType, len(v.Data))
	case *mcpsdk.AudioContent:
		return fmt.Sprintf("[audio: %s, %d bytes]", v.MIMEType, len(v.Data))
	case *mcpsdk.ResourceLink:
		name := v.Name
		if name == "" {
			name = v.URI
		}
		return fmt.Sprintf("[%s](%s)", name, v.URI)
	case *mcpsdk.EmbeddedResource:
		return resourceText(v.Resource)
	default:
		return ""
	}
}

func resourceText(r *mcpsdk.ResourceContents) string {
	if r == nil {
		return ""
	}
	if r.Text == "" {
		if len(r.Blob) > 0 {
			return fmt.Sprintf("[resource %s: %s, %d bytes]", r.URI, r.MIMEType, len(r.Blob))
		}
		return ""
	}
	if strings.HasPrefix(r.MIMEType, "text/html") || looksLikeHTML(r.Text) {
		return htmlOrRaw(r.Text)
	}
	return r.Text
}

func looksLikeHTML(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	if len(head) > 64 {
		head = head[:64]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

func htmlOrRaw(html string) string {
	out, err := HTMLToMarkdown(html)
	if err != nil {
		return html
	}
	return out
}

// HTMLToMarkdown strips script and style nodes from an HTML document and
// converts what remains to Markdown.
func HTMLToMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	cleaned, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	markdown = strings.TrimSpace(markdown)
	for strings.Contains(markdown, "\n\n\n") {
		markdown = strings.ReplaceAll(markdown, "\n\n\n", "\n\n")
	}
	return markdown, nil
}
