// Package htmltext extracts plain text from HTML input so markup never
// pollutes n-gram statistics.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip parses HTML and returns its text content. Script and style bodies
// are dropped; element boundaries become newlines so n-gram windows never
// span unrelated elements. If parsing fails the input is returned as-is.
func Strip(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode {
			buf.WriteByte('\n')
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
