package components

import (
	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// BlogCardProps defines the properties for the BlogCard component
type BlogCardProps struct {
	Href        string
	Featured    bool
	Image       string
	Alt         string
	Date        string
	Title       string
	Description string
	Palette     Palette
}

// BlogCard is the article teaser used on the home page
func BlogCard(props BlogCardProps) *vdom.VNode {
	p := props.Palette

	var badge *vdom.VNode
	if props.Featured {
		badge = builder.Span().Class("badge-featured").Text("FEATURED").Build()
	}

	return builder.A().
		Href(props.Href).
		Class("card-link").
		Children(
			builder.Div().
				Class("card", p.Surface).
				Children(
					builder.Div().Class("card-media").Children(
						builder.Img().
							Src(props.Image).
							Alt(props.Alt).
							Width(400).
							Height(250).
							Loading("lazy").
							Class("card-image").
							Build(),
						badge,
					).Build(),
					builder.Div().Class("card-body").Children(
						builder.Time().Class("card-date", p.Muted).Text(props.Date).Build(),
						builder.H3().Class("card-title", p.Heading).Text(props.Title).Build(),
						builder.P().Class("card-description", p.Body).Text(props.Description).Build(),
						builder.Span().Class("card-more").Text("Read full article >>").Build(),
					).Build(),
				).Build(),
		).Build()
}

// CardGrid lays cards out in a responsive grid
func CardGrid(cards ...*vdom.VNode) *vdom.VNode {
	return builder.Div().Class("card-grid").Children(cards...).Build()
}
