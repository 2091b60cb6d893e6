// Package plaintext turns pasted rich text into plain instruction lines.
package plaintext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var markup = regexp.MustCompile(`(?i)<(?:p|div|br|li|ul|ol|span|b|strong|em|i|u|h[1-6]|html|body|table|tr|td|blockquote)[\s/>]`)

const blocks = "p, div, li, h1, h2, h3, h4, h5, h6, tr, blockquote, pre"

// LooksLikeHTML reports whether s contains common rich-text markup.
func LooksLikeHTML(s string) bool {
	return markup.MatchString(s)
}

// Lines extracts one trimmed, non-empty line per block element of html.
func Lines(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blocks).Each(func(_ int, sel *goquery.Selection) {
		sel.PrependHtml("\n")
		sel.AppendHtml("\n")
	})

	var out []string
	for _, l := range strings.Split(doc.Text(), "\n") {
		if t := strings.Join(strings.Fields(l), " "); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// ToText returns s unchanged unless it looks like HTML, in which case its
// block text is joined with newlines.
func ToText(s string) (string, error) {
	if !LooksLikeHTML(s) {
		return s, nil
	}
	lines, err := Lines(s)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
