package linkcheck

import (
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/logfields"
)

// BrokenLink is an internal link whose target is missing.
type BrokenLink struct {
	// Page is the site-relative path of the HTML file holding the link.
	Page string
	// Link is the attribute value as written.
	Link string
	// Target is the site-relative path the link resolved to.
	Target string
}

// Check walks every *.html file under root and reports internal links whose
// targets do not exist. Links under baseURL, root-relative links and
// page-relative links are internal; other hosts and anchors are skipped.
// A link to a directory is satisfied by its index.html.
func Check(root, baseURL string) ([]BrokenLink, error) {
	var base *url.URL
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "invalid base URL").
				WithContext("base_url", baseURL).Build()
		}
		base = u
	}

	var broken []BrokenLink
	checked := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		page := filepath.ToSlash(rel)

		links, err := ExtractLinks(path)
		if err != nil {
			return err
		}
		for _, l := range links {
			target, ok := resolve(l.URL, page, base)
			if !ok {
				continue
			}
			checked++
			if !exists(root, target) {
				broken = append(broken, BrokenLink{Page: page, Link: l.URL, Target: target})
			}
		}
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk output directory").
			WithContext("path", root).Build()
	}

	sort.SliceStable(broken, func(i, j int) bool {
		if broken[i].Page != broken[j].Page {
			return broken[i].Page < broken[j].Page
		}
		return broken[i].Link < broken[j].Link
	})
	slog.Debug("Link check finished", logfields.Output(root), slog.Int("links", checked), slog.Int("broken", len(broken)))
	return broken, nil
}

func exists(root, target string) bool {
	clean := filepath.Clean(filepath.FromSlash(target))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return false
	}
	info, err := os.Stat(filepath.Join(root, clean))
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err := os.Stat(filepath.Join(root, clean, "index.html"))
		return err == nil
	}
	return true
}
