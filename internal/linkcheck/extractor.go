// Package linkcheck verifies that internal links in a generated site point at
// files that exist in the output tree.
package linkcheck

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// Link is a URL reference found in an HTML document.
type Link struct {
	URL       string
	Tag       string
	Attribute string
}

// linkAttrs maps elements to the attribute carrying their URL.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"script": "src",
	"img":    "src",
}

// ExtractLinks parses the HTML file at path and returns its links.
func ExtractLinks(path string) ([]Link, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").
			WithContext("path", path).Build()
	}
	defer func() {
		_ = file.Close()
	}()

	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader parses r and returns the href/src values of a, link,
// script and img elements in document order.
func ExtractLinksFromReader(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttrs[n.Data]; ok {
				if v := getAttr(n, attr); v != "" {
					links = append(links, Link{URL: v, Tag: n.Data, Attribute: attr})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// skipPrefixes are link forms that never resolve to a file.
var skipPrefixes = []string{"#", "mailto:", "tel:", "javascript:", "data:"}

// resolve maps a link found on page (site-relative slash path) to a
// site-relative target path. ok is false for links outside the site.
func resolve(link, page string, base *url.URL) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(link))
	for _, p := range skipPrefixes {
		if strings.HasPrefix(lower, p) {
			return "", false
		}
	}

	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Opaque != "" {
		return "", false
	}

	basePath := "/"
	if base != nil && base.Path != "" {
		basePath = base.Path
	}

	switch {
	case u.Scheme != "" || u.Host != "":
		if base == nil || !strings.EqualFold(u.Host, base.Host) {
			return "", false
		}
		if !strings.HasPrefix(u.Path, basePath) {
			return "", false
		}
		return strings.TrimPrefix(u.Path, basePath), true
	case u.Path == "":
		return "", false
	case strings.HasPrefix(u.Path, "/"):
		if strings.HasPrefix(u.Path, basePath) {
			return strings.TrimPrefix(u.Path, basePath), true
		}
		return strings.TrimPrefix(u.Path, "/"), true
	default:
		dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(page)))
		return filepath.ToSlash(filepath.Join(filepath.FromSlash(dir), filepath.FromSlash(u.Path))), true
	}
}
