package site

import (
	"github.com/cyberinsights/inkwell/internal/content"
	"github.com/cyberinsights/inkwell/pkg/behavior"
	"github.com/cyberinsights/inkwell/pkg/components"
	htmlrenderer "github.com/cyberinsights/inkwell/pkg/renderer/html"
	"github.com/cyberinsights/inkwell/pkg/server"
	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// Author portraits are zoomable thumbnails
const (
	portraitClass = "w-24 h-24 rounded-full mb-2"
	portraitSize  = 96
)

func (s *Site) home(ctx server.Ctx) (*vdom.VNode, error) {
	store := s.Store()
	palette := components.PaletteFor(false)
	setMeta(ctx, pageMeta{Description: s.cfg.Site.Tagline})

	featured := store.Featured()
	var hero *vdom.VNode
	if featured != nil {
		hero = builder.Section().Class("home-featured").Children(
			card(featured, true, palette),
		).Build()
	}

	cards := make([]*vdom.VNode, 0, len(store.All()))
	for _, p := range store.All() {
		if p == featured {
			continue
		}
		cards = append(cards, card(p, false, palette))
	}

	var latest *vdom.VNode
	if len(cards) > 0 {
		latest = builder.Section().Class("home-latest").Children(
			builder.H2().Class("home-heading", palette.Heading).Text("Latest Articles").Build(),
			components.CardGrid(cards...),
		).Build()
	}

	return builder.Main().ID("top").Class("home").Children(hero, latest).Build(), nil
}

func card(p *content.Post, featured bool, palette components.Palette) *vdom.VNode {
	return components.BlogCard(components.BlogCardProps{
		Href:        p.URL(),
		Featured:    featured,
		Image:       p.Image,
		Alt:         p.Title,
		Date:        p.DisplayDate(),
		Title:       p.Title,
		Description: p.Description,
		Palette:     palette,
	})
}

func (s *Site) about(ctx server.Ctx) (*vdom.VNode, error) {
	page, err := s.Store().Page("about")
	if err != nil {
		return nil, server.ErrNotFound
	}
	return s.articlePage(ctx, page)
}

func (s *Site) article(ctx server.Ctx) (*vdom.VNode, error) {
	post, err := s.Store().BySlug(ctx.Param("slug"))
	if err != nil {
		return nil, server.ErrNotFound
	}
	return s.articlePage(ctx, post)
}

// articlePage renders a post with its table of contents. The TOC is the
// scroll spy's initial render so the client replaces it without a jump.
func (s *Site) articlePage(ctx server.Ctx, post *content.Post) (*vdom.VNode, error) {
	setMeta(ctx, pageMeta{
		Title:       post.Title,
		Description: post.Description,
		Sections:    post.Sections,
	})

	var toc *vdom.VNode
	if len(post.Sections) > 0 {
		toc = behavior.NewScrollSpy(post.Sections, s.cfg.Reading.SpyThreshold, nil).Render()
	}

	authors := post.ComponentAuthors()
	for i := range authors {
		if authors[i].Image == "" {
			continue
		}
		portrait, err := s.portrait(authors[i])
		if err != nil {
			return nil, err
		}
		authors[i].Portrait = portrait
	}

	return components.ArticleLayout(components.ArticleLayoutProps{
		Title:   post.Title,
		Date:    post.DisplayDate(),
		Authors: authors,
		TOC:     toc,
		Body:    vdom.NewRaw(post.Body),
		Palette: components.PaletteFor(false),
	}), nil
}

// portrait renders an author image as a zoomable widget. It is emitted as
// raw markup so hydration markers match what the client expects.
func (s *Site) portrait(a components.Author) (*vdom.VNode, error) {
	img := behavior.NewZoomableImage(behavior.ImageProps{
		Src:         a.Image,
		Alt:         a.Name,
		Class:       portraitClass,
		Width:       portraitSize,
		Height:      portraitSize,
		ZoomWidth:   s.cfg.Reading.ZoomWidth,
		ZoomHeight:  s.cfg.Reading.ZoomHeight,
		Placeholder: s.cfg.Reading.Placeholder,
	}, nil)
	markup, err := htmlrenderer.RenderToString(img.Render())
	if err != nil {
		return nil, err
	}
	return vdom.NewRaw(markup), nil
}

func (s *Site) notFound(ctx server.Ctx) (*vdom.VNode, error) {
	setMeta(ctx, pageMeta{Title: "Page Not Found"})
	return statusPage("404", "We couldn't find that page.", components.PaletteFor(false)), nil
}

func (s *Site) errorPage(ctx server.Ctx) (*vdom.VNode, error) {
	setMeta(ctx, pageMeta{Title: "Something Went Wrong"})
	return statusPage("500", "Something went wrong on our end. Please try again later.", components.PaletteFor(false)), nil
}

func statusPage(code, message string, palette components.Palette) *vdom.VNode {
	return builder.Main().ID("top").Class("error-page").Children(
		builder.H1().Class(palette.Heading).Text(code).Build(),
		builder.P().Class(palette.Body).Text(message).Build(),
		builder.A().Href("/").Class("nav-link").Text("Back to the home page").Build(),
	).Build()
}

// PostSummary is one entry of /api/posts
type PostSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Featured    bool   `json:"featured,omitempty"`
}

func (s *Site) postsAPI(ctx server.Ctx) (any, error) {
	posts := s.Store().All()
	out := make([]PostSummary, len(posts))
	for i, p := range posts {
		out[i] = PostSummary{
			Slug:        p.Slug,
			Title:       p.Title,
			Date:        p.Date,
			Description: p.Description,
			URL:         p.URL(),
			Featured:    p.Featured,
		}
	}
	return out, nil
}
