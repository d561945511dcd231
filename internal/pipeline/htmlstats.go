package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLStats counts the elements produced by the mark rules in a page.
type HTMLStats struct {
	Paragraphs int
	Headings   int
	Stanzas    int
	Bold       int
	Italic     int
	Strike     int
}

// InspectHTML parses htmlContent and counts the elements the mark rules emit.
// Parsing is lenient; an unparsable page yields zero counts and the error.
func InspectHTML(htmlContent string) (HTMLStats, error) {
	var stats HTMLStats

	doc, _, err := parseHTML(htmlContent)
	if err != nil {
		return stats, err
	}

	walkElements(doc, func(n *html.Node) {
		switch n.DataAtom {
		case atom.P:
			stats.Paragraphs++
		case atom.H1:
			stats.Headings++
		case atom.B:
			stats.Bold++
		case atom.I:
			stats.Italic++
		case atom.S:
			stats.Strike++
		case atom.Div:
			if hasClass(n, "stanza") {
				stats.Stanzas++
			}
		}
	})

	return stats, nil
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// Fragments render their children only, without an <html><body> wrapper.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// walkElements calls fn for every element node under n, depth first.
func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

// hasClass reports whether n carries class in its class attribute.
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
