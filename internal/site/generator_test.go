package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/autosite/internal/config"
	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/manifest"
)

type fixture struct {
	root   string
	output string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	t.Setenv("SITE_ROOT", root)
	// The default assets_dir is relative to the working directory.
	t.Chdir(root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "logo.svg"), []byte("<svg/>"), 0o600))
	return &fixture{root: root, output: filepath.Join(root, "site")}
}

func (f *fixture) write(t *testing.T, rel, body string) {
	t.Helper()
	path := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func (f *fixture) out(rel string) string {
	return filepath.Join(f.output, filepath.FromSlash(rel))
}

func (f *fixture) generator(t *testing.T, yamlConfig string) *Generator {
	t.Helper()
	cfg, err := config.Parse([]byte(yamlConfig))
	require.NoError(t, err)
	g, err := NewGenerator(cfg, f.output)
	require.NoError(t, err)
	return g.SetRawConfig([]byte(yamlConfig))
}

func TestGenerate_HomepageAndSinglePage(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Welcome\n\n## Glad you are here\n\nHello.\n")
	f.write(t, "content/about.md", "Just about me.\n")

	g := f.generator(t, `
title: Test Site
homepage: ${SITE_ROOT}/content/home.md
pages:
  - path: ${SITE_ROOT}/content/about.md
    title: About
`)
	report, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, 2, report.PagesWritten)

	home := parseHTMLFile(t, f.out("index.html"))
	assert.Equal(t, "Welcome - Test Site", pageTitle(t, home))
	assert.Equal(t, []string{"Home"}, activeNavTitles(home))

	about := parseHTMLFile(t, f.out("about.html"))
	assert.Equal(t, "About - Test Site", pageTitle(t, about))
	assert.Equal(t, []string{"About"}, activeNavTitles(about))

	links := navLinks(about)
	require.Len(t, links, 2)
	assert.Equal(t, "index.html", attr(links[0], "href"))
	assert.Equal(t, "about.html", attr(links[1], "href"))

	homeRaw, err := os.ReadFile(f.out("index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(homeRaw), `<meta name="description" content="Glad you are here">`)
	aboutRaw, err := os.ReadFile(f.out("about.html"))
	require.NoError(t, err)
	assert.Contains(t, string(aboutRaw), `content="Static site generated with AutoSite"`)

	assert.FileExists(t, f.out("assets/style.css"))
	assert.FileExists(t, f.out("assets/script.js"))
	assert.FileExists(t, f.out("assets/logo.svg"))
	assert.Equal(t, 1, report.AssetsCopied)
}

func TestGenerate_PaginatedCollection(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	for i := 1; i <= 25; i++ {
		f.write(t, fmt.Sprintf("content/blog/post-%02d.md", i), fmt.Sprintf("# Post %d\n\n## Summary %d\n", i, i))
	}

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
build:
  paginate_by: 10
pages:
  - path: ${SITE_ROOT}/content/blog
`)
	report, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Collections)
	assert.Equal(t, 3, report.ListPages)
	assert.Equal(t, 26, report.PagesWritten)

	for _, name := range []string{"index.html", "page2.html", "page3.html", "post-01.html", "post-25.html"} {
		assert.FileExists(t, f.out("blog/"+name))
	}
	assert.NoFileExists(t, f.out("blog/page4.html"))

	first := parseHTMLFile(t, f.out("blog/index.html"))
	items := findAll(first, byTagClass("ul", "content-list"))
	require.Len(t, items, 1)
	entries := findAll(items[0], byTag("li"))
	require.Len(t, entries, 10)
	assert.Equal(t, "blog/post-01.html", attr(findAll(entries[0], byTag("a"))[0], "href"))
	assert.Equal(t, "Blog - SiteGen", pageTitle(t, first))
	assert.Equal(t, []string{"Blog"}, activeNavTitles(first))
	assert.Empty(t, findAll(first, byTagClass("a", "prev")))
	require.Len(t, findAll(first, byTagClass("a", "next")), 1)

	second := parseHTMLFile(t, f.out("blog/page2.html"))
	assert.Equal(t, "Blog - Page 2 - SiteGen", pageTitle(t, second))
	assert.Equal(t, []string{"Blog"}, activeNavTitles(second), "list pages highlight the collection")
	prev := findAll(second, byTagClass("a", "prev"))
	require.Len(t, prev, 1)
	assert.Equal(t, "blog/index.html", attr(prev[0], "href"))

	last := parseHTMLFile(t, f.out("blog/page3.html"))
	lastItems := findAll(findAll(last, byTagClass("ul", "content-list"))[0], byTag("li"))
	assert.Len(t, lastItems, 5)
	assert.Empty(t, findAll(last, byTagClass("a", "next")))
	prev = findAll(last, byTagClass("a", "prev"))
	require.Len(t, prev, 1)
	assert.Equal(t, "blog/page2.html", attr(prev[0], "href"))

	item := parseHTMLFile(t, f.out("blog/post-03.html"))
	assert.Equal(t, "Post 3 - SiteGen", pageTitle(t, item))
}

func TestGenerate_ExternalPage(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
pages:
  - path: https://example.com
    title: Example
`)
	report, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.PagesWritten)

	entries, err := os.ReadDir(f.output)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"assets", "index.html"}, names)

	links := navLinks(parseHTMLFile(t, f.out("index.html")))
	require.Len(t, links, 2)
	assert.Equal(t, "https://example.com", attr(links[1], "href"))
	assert.Equal(t, "_blank", attr(links[1], "target"))
	assert.Equal(t, "noopener noreferrer", attr(links[1], "rel"))
}

func TestGenerate_MissingInputsAreWarnings(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	f.write(t, "content/real.md", "# Real\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
build:
  assets_dir: ${SITE_ROOT}/no-assets
pages:
  - path: ${SITE_ROOT}/content/missing.md
  - path: ${SITE_ROOT}/content/real.md
`)
	report, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeWarning, report.Outcome)
	assert.Empty(t, report.Errors)
	assert.Len(t, report.Warnings, 2, "missing assets dir and missing page")
	assert.Equal(t, 2, report.Skipped)
	assert.FileExists(t, f.out("real.html"), "processing continues after a missing page")
	assert.NoFileExists(t, f.out("missing.html"))
}

func TestGenerate_EmptyCollection(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	f.write(t, "content/empty/notes.txt", "not markdown\n")
	f.write(t, "content/after.md", "# After\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
pages:
  - path: ${SITE_ROOT}/content/empty
  - path: ${SITE_ROOT}/content/after.md
`)
	report, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeWarning, report.Outcome)
	assert.Empty(t, report.Errors)
	require.Len(t, report.Warnings, 1)
	assert.True(t, errors.HasCategory(report.Warnings[0], errors.CategoryNotFound))
	assert.Equal(t, 0, report.ListPages)
	assert.NoFileExists(t, f.out("empty/index.html"))
	assert.FileExists(t, f.out("after.html"), "processing continues after an empty collection")
}

func TestGenerate_OutputIsWorldReadable(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	f.write(t, "content/blog/post.md", "# Post\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
build:
  manifest: true
pages:
  - path: ${SITE_ROOT}/content/blog
`)
	_, err := g.Generate(context.Background())
	require.NoError(t, err)

	cases := map[string]os.FileMode{
		"":                 0o755,
		"index.html":       0o644,
		"blog":             0o755,
		"blog/index.html":  0o644,
		"assets":           0o755,
		"assets/style.css": 0o644,
		"assets/script.js": 0o644,
		manifest.FileName:  0o644,
	}
	for rel, want := range cases {
		info, err := os.Stat(f.out(rel))
		require.NoError(t, err, rel)
		assert.Equal(t, want, info.Mode().Perm(), rel)
	}
}

func TestGenerate_MissingHomepageIsFatal(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/about.md", "# About\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/nope.md
pages:
  - path: ${SITE_ROOT}/content/about.md
`)
	report, err := g.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasSeverity(err, errors.SeverityFatal))
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.NoFileExists(t, f.out("about.html"))
}

func TestGenerate_CanceledBetweenPages(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	f.write(t, "content/about.md", "# About\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
pages:
  - path: ${SITE_ROOT}/content/about.md
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := g.Generate(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryBuild))
	assert.Equal(t, OutcomeCanceled, report.Outcome)
	assert.FileExists(t, f.out("index.html"), "files written before cancellation are kept")
	assert.NoFileExists(t, f.out("about.html"))
}

func TestGenerate_SlugCollisionLastWriterWins(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	f.write(t, "content/a.md", "first\n")
	f.write(t, "content/b.md", "second\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
pages:
  - path: ${SITE_ROOT}/content/a.md
    title: Same
  - path: ${SITE_ROOT}/content/b.md
    title: Same
`)
	report, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Collisions)

	data, err := os.ReadFile(f.out("same.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "second")
	assert.NotContains(t, string(data), "first")
}

func TestGenerate_WeightOrdering(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	f.write(t, "content/docs/a.md", "# A\n")
	f.write(t, "content/docs/b.md", "---\nweight: 2\n---\n# B\n")
	f.write(t, "content/docs/c.md", "---\nweight: 1\n---\n# C\n")
	f.write(t, "content/docs/d.md", "# D\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
build:
  order: weight
pages:
  - path: ${SITE_ROOT}/content/docs
    title: Docs
`)
	_, err := g.Generate(context.Background())
	require.NoError(t, err)

	list := parseHTMLFile(t, f.out("docs/index.html"))
	var titles []string
	for _, a := range findAll(findAll(list, byTagClass("ul", "content-list"))[0], byTag("a")) {
		titles = append(titles, textOf(a))
	}
	assert.Equal(t, []string{"C", "B", "A", "D"}, titles)

	item, err := os.ReadFile(f.out("docs/b.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(item), "weight: 2", "frontmatter is not rendered")
}

func TestGenerate_RerunIsByteIdentical(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	f.write(t, "content/about.md", "# About\n\n```go\nfmt.Println(1)\n```\n")

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
pages:
  - path: ${SITE_ROOT}/content/about.md
`)
	_, err := g.Generate(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(f.out("about.html"))
	require.NoError(t, err)

	_, err = g.Generate(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(f.out("about.html"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `class="language-go"`)
}

func TestGenerate_LinkCheckManifestAndMetrics(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n\n[gone](missing.html)\n")
	f.write(t, "content/about.md", "# About\n")
	metricsPath := filepath.Join(f.root, "metrics", "autosite.prom")
	require.NoError(t, os.MkdirAll(filepath.Dir(metricsPath), 0o750))

	g := f.generator(t, `
base_url: /
homepage: ${SITE_ROOT}/content/home.md
build:
  check_links: true
  manifest: true
  metrics_file: `+metricsPath+`
pages:
  - path: ${SITE_ROOT}/content/about.md
`)
	report, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.BrokenLinks)
	assert.Equal(t, OutcomeWarning, report.Outcome)

	data, err := os.ReadFile(f.out(manifest.FileName))
	require.NoError(t, err)
	m, err := manifest.FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, report.BuildID, m.ID)
	assert.Equal(t, "warning", m.Status)
	assert.Len(t, m.ConfigHash, 64)
	require.Len(t, m.Outputs, 2)
	assert.Equal(t, "about.html", m.Outputs[0].Path)
	assert.NotEmpty(t, m.Outputs[0].Fingerprint)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `autosite_pages_written_total{kind="home"} 1`)
	assert.True(t, strings.Contains(string(prom), "autosite_build_outcomes_total"))
}

func TestGenerate_LegacyEntries(t *testing.T) {
	f := newFixture(t)
	f.write(t, "content/home.md", "# Home\n")
	f.write(t, "posts/a.md", "###\ntitle: A\nurl: out/a.html\ndata: 2024-01-01\ndescription: First\n###\nBody\n")
	f.write(t, "posts/bad.md", "###\ntitle: Bad\n###\nBody\n")
	f.write(t, "template/post.html", "<h1>{{.title}}</h1>{{.main_content}}")
	f.write(t, "template/list.json", `[{"id":"7","url":"x","title":"x","data":"x","abstract":"x"}]`)

	g := f.generator(t, `
homepage: ${SITE_ROOT}/content/home.md
entries:
  - source: ${SITE_ROOT}/posts/a.md
    template: ${SITE_ROOT}/template/post.html
    output: ${SITE_ROOT}/out/a.html
    list: ${SITE_ROOT}/template/list.json
  - source: ${SITE_ROOT}/posts/bad.md
    template: ${SITE_ROOT}/template/post.html
    output: ${SITE_ROOT}/out/bad.html
    list: ${SITE_ROOT}/template/list.json
`)
	report, err := g.Generate(context.Background())
	require.NoError(t, err, "entry failures do not abort the build")
	assert.Equal(t, 1, report.Entries)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, OutcomeFailed, report.Outcome)

	out, err := os.ReadFile(filepath.Join(f.root, "out", "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>A</h1><p>Body</p>\n", string(out))

	list, err := os.ReadFile(filepath.Join(f.root, "template", "list.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(list), "[\n    {\n        \"id\": \"8\""))
}
