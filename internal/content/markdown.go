package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/cyberinsights/inkwell/pkg/behavior"
	htmlrenderer "github.com/cyberinsights/inkwell/pkg/renderer/html"
)

// DefaultImageClass is applied to images embedded in article bodies
const DefaultImageClass = "w-full h-full object-contain"

// Options configures Markdown rendering
type Options struct {
	// Placeholder replaces images that fail to load
	Placeholder string
	ImageClass  string
	// Image sizes; zero values use the zoomable image defaults
	Width      int
	Height     int
	ZoomWidth  int
	ZoomHeight int
	// HighlightStyle is a chroma style name
	HighlightStyle string
}

// Renderer converts article Markdown to HTML
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a goldmark pipeline with GFM, syntax highlighting,
// heading ids and zoomable images
func NewRenderer(opts Options) *Renderer {
	if opts.ImageClass == "" {
		opts.ImageClass = DefaultImageClass
	}
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = "github"
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(opts.HighlightStyle),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(&imageRenderer{opts: opts}, 100),
			),
		),
	)
	return &Renderer{md: md}
}

// Render converts source to HTML and returns the sections found in it
func (r *Renderer) Render(source []byte) (string, []behavior.TOCEntry, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", nil, fmt.Errorf("render markdown: %w", err)
	}
	return wrapSections(buf.String())
}

// wrapSections moves every top-level h2 and the content up to the next h2
// into a <section>. The section takes over the heading's id so it can be
// observed as a whole; the heading keeps "<id>-heading".
func wrapSections(markup string) (string, []behavior.TOCEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", nil, fmt.Errorf("parse rendered markdown: %w", err)
	}

	body := doc.Find("body")
	var sections []behavior.TOCEntry
	body.ChildrenFiltered("h2").Each(func(_ int, h *goquery.Selection) {
		id, ok := h.Attr("id")
		if !ok || id == "" {
			return
		}
		sections = append(sections, behavior.TOCEntry{
			ID:    id,
			Title: strings.TrimSpace(h.Text()),
		})

		h.SetAttr("id", id+"-heading")
		h.AddSelection(h.NextUntil("h2")).WrapAllHtml("<section></section>")
		h.Parent().
			SetAttr("id", id).
			SetAttr("aria-labelledby", id+"-heading")
	})

	out, err := body.Html()
	if err != nil {
		return "", nil, fmt.Errorf("serialize body: %w", err)
	}
	return out, sections, nil
}

// imageRenderer writes Markdown images as zoomable image markup
type imageRenderer struct {
	opts Options
}

func (r *imageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *imageRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	alt := plainText(n, source)

	if gmhtml.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML([]byte(alt)))
		return ast.WalkSkipChildren, nil
	}

	img := behavior.NewZoomableImage(behavior.ImageProps{
		Src:         string(n.Destination),
		Alt:         alt,
		Class:       r.opts.ImageClass,
		Width:       r.opts.Width,
		Height:      r.opts.Height,
		ZoomWidth:   r.opts.ZoomWidth,
		ZoomHeight:  r.opts.ZoomHeight,
		Placeholder: r.opts.Placeholder,
	}, nil)
	markup, err := htmlrenderer.RenderToString(img.Render())
	if err != nil {
		return ast.WalkStop, fmt.Errorf("render image %s: %w", n.Destination, err)
	}
	_, _ = w.WriteString(markup)

	if len(n.Title) > 0 {
		_, _ = w.WriteString(`<span class="image-caption">`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_, _ = w.WriteString(`</span>`)
	}
	return ast.WalkSkipChildren, nil
}

// plainText concatenates the text under n
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
