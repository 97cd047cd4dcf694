package site

import (
	"encoding/json"

	"github.com/cyberinsights/inkwell/pkg/behavior"
	"github.com/cyberinsights/inkwell/pkg/components"
	"github.com/cyberinsights/inkwell/pkg/server"
	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

const metaKey = "site.meta"

// pageMeta is what a page handler tells the document layout
type pageMeta struct {
	Title       string
	Description string
	Sections    []behavior.TOCEntry
}

func setMeta(ctx server.Ctx, meta pageMeta) {
	ctx.Set(metaKey, meta)
}

// pageConfig is the hydration payload for a page
func (s *Site) pageConfig(meta pageMeta) behavior.PageConfig {
	r := s.cfg.Reading
	return behavior.PageConfig{
		Sections:           meta.Sections,
		SpyThreshold:       r.SpyThreshold,
		BackToTopThreshold: r.BackToTopThreshold,
		Placeholder:        r.Placeholder,
		Chrome:             s.chrome(),
	}
}

func (s *Site) chrome() behavior.Chrome {
	site := s.cfg.Site
	links := make([]components.NavLink, len(site.Links))
	for i, l := range site.Links {
		links[i] = components.NavLink{Href: l.Href, Label: l.Label}
	}
	return behavior.Chrome{
		Title:   site.Title,
		Logo:    site.Logo,
		Links:   links,
		Owner:   site.Owner,
		Tagline: site.Tagline,
		Year:    s.opts.Now().Year(),
	}
}

// document wraps page content in the full HTML shell: head, chrome, the
// widget mount points and the #page-data script the client hydrates from.
func (s *Site) document(ctx server.Ctx, child *vdom.VNode) *vdom.VNode {
	meta, _ := ctx.Get(metaKey).(pageMeta)
	palette := components.PaletteFor(false)
	site := s.cfg.Site

	title := site.Title
	if meta.Title != "" {
		title = meta.Title + " | " + site.Title
	}
	description := meta.Description
	if description == "" {
		description = site.Tagline
	}

	page := s.pageConfig(meta)
	data, err := json.Marshal(page)
	if err != nil {
		ctx.Logger().Error("encode page data", "error", err)
		data = []byte("{}")
	}

	var reload *vdom.VNode
	if s.opts.LiveReload {
		reload = builder.Script().Children(vdom.NewRaw(reloadScript())).Build()
	}

	// Server-side controls start from the initial state: light theme, button hidden
	controls := behavior.NewFloatingControls(s.cfg.Reading.BackToTopThreshold, nil)

	return builder.Html().Attr("lang", "en").Children(
		builder.Head().Children(
			builder.Meta().Attr("charset", "utf-8").Build(),
			builder.Meta().Name("viewport").Content("width=device-width, initial-scale=1").Build(),
			builder.Meta().Name("description").Content(description).Build(),
			builder.Title().Text(title).Build(),
			builder.Link().Rel("stylesheet").Href("/styles.css").Build(),
			builder.Link().Rel("icon").Href(s.logoPath()).Build(),
			builder.Script().Src("/assets/wasm_exec.js").Build(),
			builder.Script().Src("/assets/bootstrap.js").Attr("defer", true).Build(),
			reload,
		).Build(),
		builder.Body().Class(palette.Page).Children(
			builder.Div().ID(components.ProgressRootID).Children(components.ProgressBar(0)).Build(),
			builder.Div().ID(components.NavbarRootID).Children(page.Chrome.Navbar(palette)).Build(),
			child,
			builder.Div().ID(components.FooterRootID).Children(page.Chrome.Footer(palette)).Build(),
			builder.Div().ID(components.ControlsRootID).Children(controls.Render()).Build(),
			builder.Script().
				ID(components.PageDataID).
				Type("application/json").
				Children(vdom.NewRaw(string(data))).
				Build(),
		).Build(),
	).Build()
}
