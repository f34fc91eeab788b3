// Package markdown converts Markdown page bodies to HTML with goldmark.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// Converter renders Markdown to HTML. Fenced code blocks are always
// recognised; raw HTML in the source is passed through unchanged.
type Converter struct {
	md goldmark.Markdown
}

type options struct {
	enlighter bool
}

// Option configures a Converter.
type Option func(*options)

// WithEnlighterCodeBlocks renders fenced code blocks as
// <pre data-enlighter-language="lang"> for the EnlighterJS highlighter.
// Blocks without an info string are tagged "plaintext".
func WithEnlighterCodeBlocks() Option {
	return func(o *options) { o.enlighter = true }
}

// New builds a Converter.
func New(opts ...Option) *Converter {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rendererOpts := []renderer.Option{html.WithUnsafe()}
	if o.enlighter {
		rendererOpts = append(rendererOpts,
			renderer.WithNodeRenderers(util.Prioritized(&enlighterRenderer{}, 100)))
	}

	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Convert renders src to an HTML fragment.
func (c *Converter) Convert(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return "", errors.WrapError(err, errors.CategoryMarkdown, "convert markdown").Build()
	}
	return buf.String(), nil
}

type enlighterRenderer struct{}

func (r *enlighterRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *enlighterRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	lang := []byte("plaintext")
	if l := n.Language(source); len(l) > 0 {
		lang = l
	}

	_, _ = w.WriteString(`<pre data-enlighter-language="`)
	_, _ = w.Write(util.EscapeHTML(lang))
	_, _ = w.WriteString(`">`)
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	_, _ = w.WriteString("</pre>\n")
	return ast.WalkSkipChildren, nil
}
