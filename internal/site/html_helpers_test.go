package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHTMLFile(t *testing.T, path string) *html.Node {
	t.Helper()
	f, err := os.Open(filepath.Clean(path))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	doc, err := html.Parse(f)
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byTagClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Data != tag {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return strings.TrimSpace(b.String())
}

func pageTitle(t *testing.T, doc *html.Node) string {
	t.Helper()
	titles := findAll(doc, byTag("title"))
	require.Len(t, titles, 1)
	return textOf(titles[0])
}

// navLinks returns the anchors inside the header navigation.
func navLinks(doc *html.Node) []*html.Node {
	var links []*html.Node
	for _, navEl := range findAll(doc, byTag("nav")) {
		links = append(links, findAll(navEl, byTag("a"))...)
	}
	return links
}

// activeNavTitles returns the link texts of nav items marked active.
func activeNavTitles(doc *html.Node) []string {
	var titles []string
	for _, li := range findAll(doc, byTagClass("li", "active")) {
		for _, a := range findAll(li, byTag("a")) {
			titles = append(titles, textOf(a))
		}
	}
	return titles
}
