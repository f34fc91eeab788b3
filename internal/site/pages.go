package site

import (
	"bytes"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/autosite/internal/config"
	"git.home.luguber.info/inful/autosite/internal/content"
	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/logfields"
	"git.home.luguber.info/inful/autosite/internal/metrics"
	"git.home.luguber.info/inful/autosite/internal/nav"
	"git.home.luguber.info/inful/autosite/internal/slug"
	"git.home.luguber.info/inful/autosite/internal/templates"
)

// source is a Markdown file read from disk.
type source struct {
	name string // file name without extension
	path string
	raw  []byte
	doc  content.Document
}

// RenderPage dispatches a page declaration: external URLs only appear in the
// navigation, files become single pages and directories become collections.
func (g *Generator) RenderPage(p config.Page) error {
	if nav.IsExternal(p.Path) {
		slog.Info("External link", logfields.Page(nav.PageTitle(p)), logfields.URL(p.Path))
		return nil
	}

	info, err := g.stat(p.Path)
	switch {
	case err != nil:
		return errors.NotFoundError("page path not found").WithContext("path", p.Path).Build()
	case info.Mode().IsRegular():
		return g.RenderSingle(p)
	case info.IsDir():
		return g.RenderCollection(p, g.config.Build.PaginateBy)
	default:
		return errors.NotFoundError("page path is neither a file nor a directory").
			WithContext("path", p.Path).Build()
	}
}

// RenderHomepage writes index.html from the Markdown file at path.
func (g *Generator) RenderHomepage(path string) error {
	src, err := g.readSource(path)
	if err != nil {
		return err
	}
	meta := content.ExtractMetadata(string(src.doc.Body), "Home")
	if err := g.writePage(nav.HomeURL, src, meta, metrics.PageKindHome); err != nil {
		return err
	}
	slog.Info("Generated homepage", logfields.Page(meta.Title), logfields.Path(path))
	return nil
}

// RenderSingle writes {slug}.html for a single-file page declaration.
func (g *Generator) RenderSingle(p config.Page) error {
	title := nav.PageTitle(p)
	url := slug.Slugify(title) + ".html"

	src, err := g.readSource(p.Path)
	if err != nil {
		return err
	}

	text := string(src.doc.Body)
	meta := content.Metadata{Title: title, Description: content.ExtractSubtitle(text)}
	if h1, ok := content.ExtractTitle(text); ok && h1 != "" {
		meta.Title = h1
	}

	if err := g.writePage(url, src, meta, metrics.PageKindSingle); err != nil {
		return err
	}
	slog.Info("Generated page", logfields.Page(meta.Title), logfields.URL(url))
	return nil
}

// RenderCollection writes one page per Markdown file in the declared
// directory to {slug}/{file-slug}.html, then the paginated index.
func (g *Generator) RenderCollection(p config.Page, pageSize int) error {
	if pageSize <= 0 {
		return errors.ValidationError("page size must be a positive integer").
			WithContext("page_size", pageSize).Build()
	}

	title := nav.PageTitle(p)
	baseSlug := slug.Slugify(title)

	sources, err := g.collectSources(p.Path)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		g.handle(errors.NotFoundError("collection has no Markdown files").
			WithContext("path", p.Path).Build(), logfields.Collection(title))
	}

	items := make([]ListItem, 0, len(sources))
	for _, src := range sources {
		url := baseSlug + "/" + slug.Slugify(src.name) + ".html"
		meta := content.ExtractMetadata(string(src.doc.Body), src.name)
		if err := g.writePage(url, src, meta, metrics.PageKindCollection); err != nil {
			g.handle(err, logfields.Collection(title), logfields.Path(src.path))
			continue
		}
		items = append(items, ListItem{Title: meta.Title, URL: url, Description: meta.Description})
	}

	pages, err := Paginate(items, title, baseSlug, pageSize)
	if err != nil {
		return err
	}
	for _, lp := range pages {
		if err := g.writeList(lp); err != nil {
			return err
		}
	}

	g.report.Collections++
	slog.Info("Generated collection",
		logfields.Collection(title),
		logfields.Slug(baseSlug),
		logfields.Items(len(items)),
		slog.Int("list_pages", len(pages)))
	return nil
}

// collectSources reads the *.md files directly inside dir in build order.
func (g *Generator) collectSources(dir string) ([]source, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundError("collection directory not found").WithContext("path", dir).Build()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read collection directory").
			WithContext("path", dir).Build()
	}

	var sources []source
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		src, err := g.readSource(filepath.Join(dir, e.Name()))
		if err != nil {
			g.handle(err)
			continue
		}
		sources = append(sources, src)
	}
	sortSources(sources, g.config.Build.Order)
	return sources, nil
}

// sortSources orders by file name, or by frontmatter weight with unweighted
// files after weighted ones and ties broken by file name.
func sortSources(sources []source, mode config.OrderMode) {
	sort.SliceStable(sources, func(i, j int) bool {
		a, b := sources[i], sources[j]
		if mode == config.OrderByWeight {
			wa, okA := a.doc.Weight()
			wb, okB := b.doc.Weight()
			switch {
			case okA && okB && wa != wb:
				return wa < wb
			case okA != okB:
				return okA
			}
		}
		return filepath.Base(a.path) < filepath.Base(b.path)
	})
}

// readSource loads a Markdown file and splits off its frontmatter. Malformed
// frontmatter is reported and the whole file is used as the body.
func (g *Generator) readSource(path string) (source, error) {
	// #nosec G304 -- page paths come from the operator's configuration.
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return source{}, errors.NotFoundError("page file not found").WithContext("path", path).Build()
	}
	if err != nil {
		return source{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page file").
			WithContext("path", path).Build()
	}

	doc, err := content.Parse(raw)
	if err != nil {
		g.handle(errors.WrapError(err, errors.CategoryMarkdown, "ignoring malformed frontmatter").
			Warning().WithContext("path", path).Build())
	}

	base := filepath.Base(path)
	return source{
		name: strings.TrimSuffix(base, filepath.Ext(base)),
		path: path,
		raw:  raw,
		doc:  doc,
	}, nil
}

func (g *Generator) pageData(title, description, currentURL string) templates.Page {
	return templates.Page{
		SiteTitle:       g.config.Title,
		PageTitle:       title,
		PageDescription: description,
		Nav:             g.nav,
		CurrentURL:      currentURL,
		BaseURL:         g.config.BaseURL,
	}
}

// writePage converts src and writes it at the site-relative url, which is
// also the page's current URL for navigation highlighting.
func (g *Generator) writePage(url string, src source, meta content.Metadata, kind metrics.PageKind) error {
	body, err := g.converter.Convert(src.doc.Body)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return classified.WithContext("path", src.path)
		}
		return err
	}

	var buf bytes.Buffer
	data := templates.ContentPage{
		Page: g.pageData(meta.Title, meta.Description, url),
		// #nosec G203 -- page bodies are trusted site content; raw HTML is passed through.
		Content: template.HTML(body),
	}
	if err := g.renderer.RenderPage(&buf, data); err != nil {
		return err
	}
	if _, err := g.out.Write(url, src.path, buf.Bytes()); err != nil {
		return err
	}

	if g.manifest != nil {
		g.manifest.Add(url, src.path, src.raw)
	}
	g.report.PagesWritten++
	g.recorder.IncPageWritten(kind)
	slog.Debug("Wrote page", logfields.Output(url), logfields.Page(meta.Title))
	return nil
}

func (g *Generator) writeList(lp ListPage) error {
	var buf bytes.Buffer
	data := templates.ListPage{
		Page:    g.pageData(lp.Title, lp.Description, lp.CurrentURL),
		Items:   lp.Items,
		PrevURL: lp.PrevURL,
		NextURL: lp.NextURL,
	}
	if err := g.renderer.RenderList(&buf, data); err != nil {
		return err
	}
	if _, err := g.out.Write(lp.OutputPath, "", buf.Bytes()); err != nil {
		return err
	}

	if g.manifest != nil {
		g.manifest.Add(lp.OutputPath, "", nil)
	}
	g.report.ListPages++
	g.recorder.IncPageWritten(metrics.PageKindList)
	slog.Debug("Wrote list page", logfields.Output(lp.OutputPath), logfields.PageNumber(lp.Number), logfields.Items(len(lp.Items)))
	return nil
}
