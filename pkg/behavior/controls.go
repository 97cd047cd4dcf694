package behavior

import (
	"github.com/cyberinsights/inkwell/pkg/components"
	"github.com/cyberinsights/inkwell/pkg/dom"
	"github.com/cyberinsights/inkwell/pkg/reactive"
	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// DefaultBackToTopThreshold is the scroll offset past which back-to-top shows
const DefaultBackToTopThreshold = 300

// Theme is the page's light/dark mode. Every view starts light.
type Theme struct {
	dark *reactive.State[bool]
	bind *binding
}

// NewTheme creates a light theme
func NewTheme(sched reactive.Scheduler) *Theme {
	return &Theme{dark: reactive.NewState(false, sched)}
}

// Attach mirrors the theme onto the document root's dark class
func (t *Theme) Attach(w dom.Window) error {
	if t.bind != nil {
		return ErrAlreadyAttached
	}
	t.bind = &binding{win: w}
	w.SetDarkClass(t.dark.Peek())
	t.bind.stops = append(t.bind.stops, t.dark.Watch(w.SetDarkClass))
	return nil
}

// Detach stops mirroring the theme
func (t *Theme) Detach() {
	if t.bind == nil {
		return
	}
	t.bind.release()
	t.bind = nil
}

// Toggle flips the theme
func (t *Theme) Toggle() {
	t.dark.Update(func(d bool) bool { return !d })
}

// Dark reports whether the dark theme is on
func (t *Theme) Dark() bool {
	return t.dark.Peek()
}

// Palette returns the chrome classes for the current theme
func (t *Theme) Palette() components.Palette {
	return components.PaletteFor(t.dark.Get())
}

// BackToTop shows a button once the page is scrolled past a threshold
type BackToTop struct {
	threshold float64
	visible   *reactive.State[bool]
	bind      *binding
}

// NewBackToTop creates a hidden button. A non-positive threshold falls back
// to DefaultBackToTopThreshold.
func NewBackToTop(threshold float64, sched reactive.Scheduler) *BackToTop {
	if threshold <= 0 {
		threshold = DefaultBackToTopThreshold
	}
	return &BackToTop{
		threshold: threshold,
		visible:   reactive.NewState(false, sched),
	}
}

// Attach tracks the scroll offset
func (b *BackToTop) Attach(w dom.Window) error {
	if b.bind != nil {
		return ErrAlreadyAttached
	}
	b.bind = &binding{win: w}
	b.bind.listen("scroll", func(dom.Event) { b.update(w.ScrollY()) })
	b.update(w.ScrollY())
	return nil
}

// Detach stops tracking
func (b *BackToTop) Detach() {
	if b.bind == nil {
		return
	}
	b.bind.release()
	b.bind = nil
}

func (b *BackToTop) update(scrollY float64) {
	visible := scrollY > b.threshold
	if visible != b.visible.Peek() {
		b.visible.Set(visible)
	}
}

// Visible reports whether the button shows
func (b *BackToTop) Visible() bool {
	return b.visible.Peek()
}

// ScrollToTop smoothly scrolls the attached window to offset 0
func (b *BackToTop) ScrollToTop() {
	if b.bind == nil {
		return
	}
	b.bind.win.ScrollTo(0, true)
}

// FloatingControls is the theme toggle plus the back-to-top button
type FloatingControls struct {
	Theme     *Theme
	BackToTop *BackToTop
}

// NewFloatingControls creates both controls
func NewFloatingControls(backToTopThreshold float64, sched reactive.Scheduler) *FloatingControls {
	return &FloatingControls{
		Theme:     NewTheme(sched),
		BackToTop: NewBackToTop(backToTopThreshold, sched),
	}
}

// Attach attaches the theme, then the back-to-top button
func (c *FloatingControls) Attach(w dom.Window) error {
	return Group{c.Theme, c.BackToTop}.Attach(w)
}

// Detach detaches both controls
func (c *FloatingControls) Detach() {
	Group{c.Theme, c.BackToTop}.Detach()
}

// Render draws both buttons; the back-to-top button only while visible
func (c *FloatingControls) Render() *vdom.VNode {
	return builder.Div().
		Class("floating-controls").
		Children(
			components.DarkModeToggle(c.Theme.dark.Get(), c.Theme.Toggle),
			components.BackToTopButton(c.BackToTop.visible.Get(), c.BackToTop.ScrollToTop),
		).Build()
}
