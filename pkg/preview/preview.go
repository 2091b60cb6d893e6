// Package preview renders compiled prompts as Markdown and HTML for review.
package preview

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Preview is a rendered prompt.
type Preview struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

var header = regexp.MustCompile(`^\[([^\[\]]+)\]$`)

// Renderer converts prompts to HTML through goldmark. Raw HTML in prompt
// text is never passed through.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Markdown rewrites bracketed header lines as level-two headings and leaves
// every other line unchanged.
func Markdown(prompt string) string {
	lines := strings.Split(strings.ReplaceAll(prompt, "\r\n", "\n"), "\n")
	for i, l := range lines {
		if m := header.FindStringSubmatch(strings.TrimSpace(l)); m != nil {
			lines[i] = "## " + m[1]
		}
	}
	return strings.Join(lines, "\n")
}

// Render converts prompt to Markdown and HTML.
func (r *Renderer) Render(prompt string) (Preview, error) {
	md := Markdown(prompt)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(md), &buf); err != nil {
		return Preview{}, fmt.Errorf("render preview: %w", err)
	}

	return Preview{Markdown: md, HTML: buf.String()}, nil
}
