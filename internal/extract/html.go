package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements whose boundaries become newline separators.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "td": true, "th": true,
	"ul": true, "ol": true, "table": true,
}

// HTML extracts plain text from HTML content.
type HTML struct{}

func (e *HTML) Extract(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return HTMLText(string(raw))
}

// HTMLText strips markup from content, converting block-level tag boundaries
// to newlines and discarding script/style bodies. On a parse failure it
// returns the original content unmodified together with the error, so the
// caller can log a warning and continue with the raw text.
func HTMLText(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content, fmt.Errorf("parse html: %w", err)
	}

	var b strings.Builder

	newline := func() {
		s := b.String()
		if s == "" || strings.HasSuffix(s, "\n\n") {
			return
		}
		b.WriteByte('\n')
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
			if blockTags[n.Data] {
				newline()
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if s := b.String(); s != "" && !strings.HasSuffix(s, "\n") {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			newline()
		}
	}
	walk(doc)

	return strings.TrimSpace(collapseNewlines(b.String())), nil
}
