package components

import (
	"github.com/cyberinsights/inkwell/pkg/dom"
	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// Active TOC entries carry these classes in addition to toc-link
const TOCActiveClass = "text-blue-600 font-bold"

// TOCItem is one table-of-contents entry
type TOCItem struct {
	ID     string
	Title  string
	Active bool
}

// TableOfContents renders the section list. onNavigate, when set, receives
// link clicks so the caller can replace the default jump.
func TableOfContents(items []TOCItem, onNavigate func(id string, ev dom.Event)) *vdom.VNode {
	lis := make([]*vdom.VNode, 0, len(items))
	for _, item := range items {
		class := "toc-link"
		if item.Active {
			class += " " + TOCActiveClass
		}

		link := builder.A().
			Href("#"+item.ID).
			Class(class).
			Data("section", item.ID).
			Text(item.Title)
		if item.Active {
			link.Aria("current", "location")
		}
		if onNavigate != nil {
			id := item.ID
			link.OnClick(func(ev dom.Event) { onNavigate(id, ev) })
		}

		lis = append(lis, builder.Li().Key(item.ID).Child(link).Build())
	}

	return builder.Nav().
		Class("toc").
		Aria("label", "Table of Contents").
		Children(
			builder.H2().Class("toc-title").Text("Table of Contents").Build(),
			builder.Ul().Class("toc-list").Children(lis...).Build(),
		).Build()
}

// Author is shown in the article's author grid
type Author struct {
	Name  string
	Image string
	Bio   string
	// Portrait replaces the plain Image when set
	Portrait *vdom.VNode
}

// ArticleLayoutProps defines the properties for the ArticleLayout component
type ArticleLayoutProps struct {
	Title   string
	Date    string
	Authors []Author
	// TOC is server-rendered into #toc-root and replaced on hydration
	TOC     *vdom.VNode
	Body    *vdom.VNode
	Palette Palette
}

// ArticleLayout is the two-column article page body
func ArticleLayout(props ArticleLayoutProps) *vdom.VNode {
	p := props.Palette

	var authors *vdom.VNode
	if len(props.Authors) > 0 {
		cards := make([]*vdom.VNode, 0, len(props.Authors))
		for _, a := range props.Authors {
			img := a.Portrait
			if img == nil && a.Image != "" {
				img = builder.Img().Src(a.Image).Alt(a.Name).Width(96).Height(96).Class("author-image").Build()
			}
			cards = append(cards, builder.Div().Class("author", p.Surface).Children(
				img,
				builder.H3().Class("author-name", p.Heading).Text(a.Name).Build(),
				builder.P().Class("author-bio", p.Body).Text(a.Bio).Build(),
			).Build())
		}
		authors = builder.Section().Class("authors").Children(
			builder.H2().Text("About the Authors").Build(),
			builder.Div().Class("author-grid").Children(cards...).Build(),
		).Build()
	}

	return builder.Main().
		ID("top").
		Class("article-page", p.Page).
		Children(
			builder.Div().Class("article-grid").Children(
				builder.Aside().Class("article-toc").Children(
					builder.Div().ID(TOCRootID).Class("toc-sticky").Children(props.TOC).Build(),
				).Build(),
				builder.Article().Class("article").Children(
					builder.Header().Class("article-header").Children(
						builder.H1().Class("article-title", p.Heading).Text(props.Title).Build(),
						builder.Time().Class("article-date", p.Muted).Text(props.Date).Build(),
					).Build(),
					builder.Div().Class("article-body").Children(props.Body).Build(),
					authors,
				).Build(),
			).Build(),
		).Build()
}
