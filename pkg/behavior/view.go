package behavior

import (
	"encoding/json"
	"fmt"

	"github.com/cyberinsights/inkwell/pkg/dom"
	"github.com/cyberinsights/inkwell/pkg/reactive"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// PageConfig is what a server-rendered page hands to the client in its
// #page-data script.
type PageConfig struct {
	Sections           []TOCEntry `json:"sections,omitempty"`
	SpyThreshold       float64    `json:"spyThreshold"`
	BackToTopThreshold float64    `json:"backToTopThreshold"`
	Placeholder        string     `json:"placeholder"`
	Chrome             Chrome     `json:"chrome"`
}

// ParsePageConfig decodes the #page-data payload
func ParsePageConfig(data []byte) (PageConfig, error) {
	var cfg PageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return PageConfig{}, fmt.Errorf("parse page data: %w", err)
	}
	return cfg, nil
}

// View owns every behavior of one page load. A new View is built for each
// load; nothing carries over between views.
type View struct {
	cfg   PageConfig
	sched reactive.Scheduler

	Progress *ReadingProgressIndicator
	Controls *FloatingControls
	// Spy is nil on pages without sections
	Spy    *ScrollSpyNavigator
	Images []*ZoomableImage

	win dom.Window
}

// NewView creates fresh behavior state for one page
func NewView(cfg PageConfig, sched reactive.Scheduler) *View {
	v := &View{
		cfg:      cfg,
		sched:    sched,
		Progress: NewReadingProgress(sched),
		Controls: NewFloatingControls(cfg.BackToTopThreshold, sched),
	}
	if len(cfg.Sections) > 0 {
		v.Spy = NewScrollSpy(cfg.Sections, cfg.SpyThreshold, sched)
	}
	return v
}

// AddImage registers a zoomable image with the view. Images added to an
// attached view are attached immediately.
func (v *View) AddImage(props ImageProps) (*ZoomableImage, error) {
	if props.Placeholder == "" {
		props.Placeholder = v.cfg.Placeholder
	}
	img := NewZoomableImage(props, v.sched)
	if v.win != nil {
		if err := img.Attach(v.win); err != nil {
			return nil, err
		}
	}
	v.Images = append(v.Images, img)
	return img, nil
}

func (v *View) group() Group {
	g := Group{v.Progress, v.Controls}
	if v.Spy != nil {
		g = append(g, v.Spy)
	}
	for _, img := range v.Images {
		g = append(g, img)
	}
	return g
}

// Attach binds every behavior to w
func (v *View) Attach(w dom.Window) error {
	if v.win != nil {
		return ErrAlreadyAttached
	}
	if err := v.group().Attach(w); err != nil {
		return err
	}
	v.win = w
	return nil
}

// Detach releases every listener and observer the view registered
func (v *View) Detach() {
	if v.win == nil {
		return
	}
	v.group().Detach()
	v.win = nil
}

// Navbar renders the site navigation in the current theme
func (v *View) Navbar() *vdom.VNode {
	return v.cfg.Chrome.Navbar(v.Controls.Theme.Palette())
}

// Footer renders the site footer in the current theme
func (v *View) Footer() *vdom.VNode {
	return v.cfg.Chrome.Footer(v.Controls.Theme.Palette())
}

// Attached reports whether the view is bound to a window
func (v *View) Attached() bool {
	return v.win != nil
}
