package behavior

import (
	"github.com/cyberinsights/inkwell/pkg/components"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// Chrome is the site navigation and footer content. The server renders it
// with the light palette; the client re-renders it on every theme change.
type Chrome struct {
	Title   string               `json:"title"`
	Logo    string               `json:"logo,omitempty"`
	Links   []components.NavLink `json:"links,omitempty"`
	Owner   string               `json:"owner,omitempty"`
	Tagline string               `json:"tagline,omitempty"`
	Year    int                  `json:"year,omitempty"`
}

// Navbar renders the navigation bar with palette p
func (c Chrome) Navbar(p components.Palette) *vdom.VNode {
	return components.Navbar(components.NavbarProps{
		SiteTitle: c.Title,
		Logo:      c.Logo,
		Links:     c.Links,
		Palette:   p,
	})
}

// Footer renders the copyright footer with palette p
func (c Chrome) Footer(p components.Palette) *vdom.VNode {
	name := c.Owner
	if name == "" {
		name = c.Title
	}
	return components.Footer(components.FooterProps{
		Year:     c.Year,
		SiteName: name,
		Tagline:  c.Tagline,
		Palette:  p,
	})
}
