package components

import (
	"strconv"

	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// NavLink is one entry of the navigation bar
type NavLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// NavbarProps defines the properties for the Navbar component
type NavbarProps struct {
	SiteTitle string
	Logo      string
	Links     []NavLink
	Palette   Palette
}

// Navbar renders the site header
func Navbar(props NavbarProps) *vdom.VNode {
	links := make([]*vdom.VNode, 0, len(props.Links))
	for _, l := range props.Links {
		links = append(links, builder.A().Href(l.Href).Class("nav-link").Text(l.Label).Build())
	}

	var logo *vdom.VNode
	if props.Logo != "" {
		logo = builder.A().Href("/").Children(
			builder.Img().Src(props.Logo).Alt(props.SiteTitle + " Logo").Width(50).Height(50).Build(),
		).Build()
	}

	return builder.Nav().
		Class("navbar", props.Palette.Page).
		Children(
			builder.A().Href("/").Class("navbar-title").Text(props.SiteTitle).Build(),
			builder.Div().Class("navbar-links").Children(links...).Build(),
			logo,
		).Build()
}

// FooterProps defines the properties for the Footer component
type FooterProps struct {
	Year     int
	SiteName string
	Tagline  string
	Palette  Palette
}

// Footer renders the copyright footer
func Footer(props FooterProps) *vdom.VNode {
	p := props.Palette

	var tagline *vdom.VNode
	if props.Tagline != "" {
		tagline = builder.P().Class("footer-tagline").Text(props.Tagline).Build()
	}

	return builder.Footer().
		Class("footer", p.Surface, "border-t", p.Border).
		Children(
			builder.Div().Class("footer-inner", p.Body).Children(
				builder.P().
					Text("© "+strconv.Itoa(props.Year)+" ").
					Children(builder.Strong().Class("footer-name").Text(props.SiteName).Build()).
					Text(". All rights reserved.").
					Build(),
				tagline,
			).Build(),
		).Build()
}
