// Package templates holds the embedded HTML layouts and asset templates used to
// render the generated site.
//
// Pages and collection indexes share the "base" layout, which renders the site
// header with the navigation bar and delegates the main area to a "content"
// block defined by page.html or list.html.
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	texttemplate "text/template"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/nav"
)

//go:embed layouts/*.html
var layoutFS embed.FS

//go:embed assets/style.css.tmpl
var styleTemplate string

//go:embed assets/script.js
var scriptSource string

// DefaultDescription is used for meta tags when a page has no description.
const DefaultDescription = "Static site generated with AutoSite"

// Page is the data every layout receives.
type Page struct {
	SiteTitle       string
	PageTitle       string
	PageDescription string
	Nav             []nav.Entry
	CurrentURL      string
	BaseURL         string
}

// DescriptionOrDefault returns the page description or DefaultDescription.
func (p Page) DescriptionOrDefault() string {
	if p.PageDescription == "" {
		return DefaultDescription
	}
	return p.PageDescription
}

// ContentPage is a rendered Markdown page.
type ContentPage struct {
	Page
	Content template.HTML
}

// Item is one entry of a collection index.
type Item struct {
	Title       string
	URL         string
	Description string
}

// ListPage is one page of a paginated collection index.
type ListPage struct {
	Page
	Items   []Item
	PrevURL string
	NextURL string
}

// Theme holds the values substituted into the stylesheet.
type Theme struct {
	FontFamily    string
	PrimaryColor  string
	ContrastColor string
}

// Renderer executes the page and list layouts.
type Renderer struct {
	page *template.Template
	list *template.Template
}

// NewRenderer parses the embedded layouts.
func NewRenderer() (*Renderer, error) {
	page, err := template.ParseFS(layoutFS, "layouts/base.html", "layouts/page.html")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "parse page layout").Fatal().Build()
	}
	list, err := template.ParseFS(layoutFS, "layouts/base.html", "layouts/list.html")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "parse list layout").Fatal().Build()
	}
	return &Renderer{page: page, list: list}, nil
}

// RenderPage writes a content page.
func (r *Renderer) RenderPage(w io.Writer, data ContentPage) error {
	if err := r.page.ExecuteTemplate(w, "base", data); err != nil {
		return errors.WrapError(err, errors.CategoryTemplate, "render page").
			WithContext("url", data.CurrentURL).Build()
	}
	return nil
}

// RenderList writes a collection index page.
func (r *Renderer) RenderList(w io.Writer, data ListPage) error {
	if err := r.list.ExecuteTemplate(w, "base", data); err != nil {
		return errors.WrapError(err, errors.CategoryTemplate, "render list").
			WithContext("url", data.CurrentURL).Build()
	}
	return nil
}

// Stylesheet renders style.css with the theme values substituted verbatim.
func Stylesheet(theme Theme) ([]byte, error) {
	tpl, err := texttemplate.New("style.css").Option("missingkey=error").Parse(styleTemplate)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "parse stylesheet template").Build()
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, theme); err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "render stylesheet").Build()
	}
	return buf.Bytes(), nil
}

// Script returns the static script.js content.
func Script() []byte {
	return []byte(scriptSource)
}
