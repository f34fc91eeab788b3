// Package nav builds the site navigation bar from the configured pages.
package nav

import (
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/autosite/internal/config"
	"git.home.luguber.info/inful/autosite/internal/content"
	"git.home.luguber.info/inful/autosite/internal/slug"
)

// HomeURL is the URL of the site homepage and of the first navigation entry.
const HomeURL = "index.html"

// Entry is one item of the navigation bar.
type Entry struct {
	Title    string
	URL      string
	External bool
}

// IsActive reports whether the entry points at the page rendered at currentURL.
func (e Entry) IsActive(currentURL string) bool {
	return e.URL == currentURL
}

// StatFunc reports file information; os.Stat in production.
type StatFunc func(name string) (os.FileInfo, error)

// IsExternal reports whether path is an absolute http(s) URL.
func IsExternal(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// PageTitle resolves the display title of a page declaration: the explicit
// title, or the title-cased base name of its path without extension.
func PageTitle(p config.Page) string {
	if p.Title != "" {
		return p.Title
	}
	base := filepath.Base(p.Path)
	return content.TitleCase(strings.TrimSuffix(base, filepath.Ext(base)))
}

// PageURL returns the site-relative URL a local page declaration is rendered
// at: "{slug}.html" for files and "{slug}/index.html" otherwise. Paths that do
// not exist get the directory form.
func PageURL(p config.Page, stat StatFunc) string {
	s := slug.Slugify(PageTitle(p))
	if stat == nil {
		stat = os.Stat
	}
	if info, err := stat(p.Path); err == nil && info.Mode().IsRegular() {
		return s + ".html"
	}
	return s + "/index.html"
}

// Build returns the navigation entries for pages, always led by "Home".
func Build(pages []config.Page, stat StatFunc) []Entry {
	entries := make([]Entry, 0, len(pages)+1)
	entries = append(entries, Entry{Title: "Home", URL: HomeURL})

	for _, p := range pages {
		title := PageTitle(p)
		if IsExternal(p.Path) {
			entries = append(entries, Entry{Title: title, URL: p.Path, External: true})
			continue
		}
		entries = append(entries, Entry{Title: title, URL: PageURL(p, stat)})
	}
	return entries
}
