// Package theme renders chat text for the terminal.
package theme

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Palette represents a color theme
type Palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
}

// DefaultPalette is used when no palette is given.
var DefaultPalette = Palette{
	Primary:   lipgloss.Color("#00ff00"),
	Text:      lipgloss.Color("#ffffff"),
	TextMuted: lipgloss.Color("#808080"),
	Success:   lipgloss.Color("#5fd75f"),
	Error:     lipgloss.Color("#ff5f5f"),
	Warning:   lipgloss.Color("#ffd75f"),
}

const (
	DefaultWidth       = 100
	DefaultSyntaxStyle = "monokai"
)

type Options struct {
	Palette     *Palette
	Width       int
	SyntaxStyle string
	Color       bool
}

// Renderer formats conversation text. The zero value is not usable; call New.
type Renderer struct {
	width       int
	syntaxStyle string
	color       bool

	user      lipgloss.Style
	assistant lipgloss.Style
	muted     lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	warning   lipgloss.Style
	title     lipgloss.Style
}

func New(opts Options) *Renderer {
	p := DefaultPalette
	if opts.Palette != nil {
		p = *opts.Palette
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.SyntaxStyle == "" {
		opts.SyntaxStyle = DefaultSyntaxStyle
	}
	return &Renderer{
		width:       opts.Width,
		syntaxStyle: opts.SyntaxStyle,
		color:       opts.Color,
		user:        lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		assistant:   lipgloss.NewStyle().Foreground(p.Text),
		muted:       lipgloss.NewStyle().Foreground(p.TextMuted),
		success:     lipgloss.NewStyle().Foreground(p.Success),
		failure:     lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		warning:     lipgloss.NewStyle().Foreground(p.Warning),
		title:       lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Underline(true),
	}
}

func (r *Renderer) render(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Prompt is the REPL input prompt.
func (r *Renderer) Prompt() string {
	return r.render(r.user, "you> ")
}

// User formats a user message as echoed in history.
func (r *Renderer) User(text string) string {
	return r.render(r.user, "you: ") + ansi.Wordwrap(text, r.width, "")
}

// Assistant formats an assistant reply. Prose is word-wrapped; fenced code
// blocks keep their layout and are highlighted when color is on.
func (r *Renderer) Assistant(text string) string {
	var b strings.Builder
	for _, seg := range SplitFences(text) {
		if seg.Code {
			b.WriteString(r.code(seg))
			continue
		}
		b.WriteString(r.render(r.assistant, ansi.Wordwrap(seg.Text, r.width, "")))
	}
	return b.String()
}

// Notice colors a status line by its leading marker.
func (r *Renderer) Notice(text string) string {
	switch {
	case strings.HasPrefix(text, "✅"):
		return r.render(r.success, text)
	case strings.HasPrefix(text, "❌"):
		return r.render(r.failure, text)
	case strings.HasPrefix(text, "⏳"):
		return r.render(r.warning, text)
	}
	return text
}

func (r *Renderer) Muted(text string) string {
	return r.render(r.muted, text)
}

func (r *Renderer) Title(text string) string {
	return r.render(r.title, text)
}

func (r *Renderer) code(seg Segment) string {
	fence := "```" + seg.Lang + "\n"
	if !r.color {
		return fence + seg.Text + "```\n"
	}

	var b strings.Builder
	lang := seg.Lang
	if lang == "" {
		lang = "plaintext"
	}
	if err := quick.Highlight(&b, seg.Text, lang, "terminal256", r.syntaxStyle); err != nil {
		return fence + seg.Text + "```\n"
	}
	return r.render(r.muted, fence) + b.String() + r.render(r.muted, "```") + "\n"
}

// Segment is a run of prose or a fenced code block.
type Segment struct {
	Code bool
	Lang string
	Text string
}

// SplitFences splits Markdown text on ``` fences. An unterminated fence runs
// to the end of the text.
func SplitFences(text string) []Segment {
	var (
		out  []Segment
		cur  strings.Builder
		code bool
		lang string
	)
	flush := func() {
		if cur.Len() > 0 || code {
			out = append(out, Segment{Code: code, Lang: lang, Text: cur.String()})
		}
		cur.Reset()
	}

	lines := strings.SplitAfter(text, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if code {
				flush()
				code, lang = false, ""
			} else {
				flush()
				code, lang = true, strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			}
			continue
		}
		cur.WriteString(line)
	}
	flush()
	return out
}
