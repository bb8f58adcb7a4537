package adapter

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractText converts an HTML or HTML-encoded string to plain text.
// It first unescapes HTML entities (some boards double-encode), lets goquery
// drop the markup, then collapses whitespace.
func extractText(content string) string {
	if content == "" {
		return ""
	}
	unescaped := html.UnescapeString(content)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(unescaped))
	if err != nil {
		return strings.Join(strings.Fields(unescaped), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
