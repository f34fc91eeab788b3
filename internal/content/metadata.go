package content

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	h1Pattern = regexp.MustCompile(`(?m)^# (.+)$`)
	h2Pattern = regexp.MustCompile(`(?m)^## (.+)$`)
)

// Metadata is the title and description pulled from a page source.
type Metadata struct {
	Title       string
	Description string
}

// ExtractTitle returns the text of the first "# " heading line.
func ExtractTitle(text string) (string, bool) {
	m := h1Pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ExtractSubtitle returns the text of the first "## " heading line, or "".
func ExtractSubtitle(text string) string {
	m := h2Pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractMetadata resolves the page title and description. When the text has
// no level-one heading the title falls back to TitleCase(fallback).
func ExtractMetadata(text, fallback string) Metadata {
	title, ok := ExtractTitle(text)
	if !ok || title == "" {
		title = TitleCase(fallback)
	}
	return Metadata{
		Title:       title,
		Description: ExtractSubtitle(text),
	}
}

// TitleCase turns a file or directory name into a display label:
// "getting-started" becomes "Getting Started".
func TitleCase(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.Und).String(name)
}
