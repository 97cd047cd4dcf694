package behavior

import (
	"strconv"

	"github.com/cyberinsights/inkwell/pkg/components"
	"github.com/cyberinsights/inkwell/pkg/dom"
	"github.com/cyberinsights/inkwell/pkg/reactive"
	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// Image defaults
const (
	DefaultPlaceholder = "/images/placeholder.jpg"
	DefaultImageSize   = 500
	DefaultZoomSize    = 800
)

// ImageProps configures a ZoomableImage
type ImageProps struct {
	Src         string
	Alt         string
	Class       string
	Width       int
	Height      int
	ZoomWidth   int
	ZoomHeight  int
	Placeholder string
}

func (p ImageProps) withDefaults() ImageProps {
	if p.Width <= 0 {
		p.Width = DefaultImageSize
	}
	if p.Height <= 0 {
		p.Height = DefaultImageSize
	}
	if p.ZoomWidth <= 0 {
		p.ZoomWidth = DefaultZoomSize
	}
	if p.ZoomHeight <= 0 {
		p.ZoomHeight = DefaultZoomSize
	}
	if p.Placeholder == "" {
		p.Placeholder = DefaultPlaceholder
	}
	return p
}

// Data attributes carrying ImageProps from server markup to the client
const (
	attrZoomable    = "data-zoomable"
	attrSrc         = "data-src"
	attrAlt         = "data-alt"
	attrClass       = "data-class"
	attrWidth       = "data-width"
	attrHeight      = "data-height"
	attrZoomWidth   = "data-zoom-width"
	attrZoomHeight  = "data-zoom-height"
	attrPlaceholder = "data-placeholder"
)

// ImagePropsFromData rebuilds props from the data attributes written by Render.
// get returns the attribute value and whether it is present.
func ImagePropsFromData(get func(name string) (string, bool)) ImageProps {
	str := func(name string) string {
		v, _ := get(name)
		return v
	}
	num := func(name string) int {
		v, ok := get(name)
		if !ok {
			return 0
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	}
	return ImageProps{
		Src:         str(attrSrc),
		Alt:         str(attrAlt),
		Class:       str(attrClass),
		Width:       num(attrWidth),
		Height:      num(attrHeight),
		ZoomWidth:   num(attrZoomWidth),
		ZoomHeight:  num(attrZoomHeight),
		Placeholder: str(attrPlaceholder),
	}.withDefaults()
}

// ZoomableImage is an inline image that opens in a full-viewport overlay.
// A load failure permanently swaps in the placeholder.
type ZoomableImage struct {
	props  ImageProps
	src    *reactive.State[string]
	zoomed *reactive.State[bool]
	failed *reactive.State[bool]

	bind *binding
}

// NewZoomableImage creates an image in the normal, unfailed state
func NewZoomableImage(props ImageProps, sched reactive.Scheduler) *ZoomableImage {
	props = props.withDefaults()
	return &ZoomableImage{
		props:  props,
		src:    reactive.NewState(props.Src, sched),
		zoomed: reactive.NewState(false, sched),
		failed: reactive.NewState(false, sched),
	}
}

// Attach listens for Escape on the window
func (z *ZoomableImage) Attach(w dom.Window) error {
	if z.bind != nil {
		return ErrAlreadyAttached
	}
	z.bind = &binding{win: w}
	z.bind.listen("keydown", func(ev dom.Event) { z.HandleKey(ev.Key()) })
	return nil
}

// Detach removes the key listener
func (z *ZoomableImage) Detach() {
	if z.bind == nil {
		return
	}
	z.bind.release()
	z.bind = nil
}

// Open zooms the image. Opening an open image keeps it open.
func (z *ZoomableImage) Open() {
	if !z.zoomed.Peek() {
		z.zoomed.Set(true)
	}
}

// Close returns to the inline image
func (z *ZoomableImage) Close() {
	if z.zoomed.Peek() {
		z.zoomed.Set(false)
	}
}

// HandleKey closes the overlay on Escape
func (z *ZoomableImage) HandleKey(key string) {
	if key == "Escape" {
		z.Close()
	}
}

// Fail records a resource load failure. It is never cleared.
func (z *ZoomableImage) Fail() {
	if !z.failed.Peek() {
		z.failed.Set(true)
	}
}

// SetSrc changes the requested source. After a failure the placeholder still wins.
func (z *ZoomableImage) SetSrc(src string) {
	z.src.Set(src)
}

// IsZoomed reports whether the overlay is showing
func (z *ZoomableImage) IsZoomed() bool {
	return z.zoomed.Peek()
}

// Failed reports whether the image fell back to the placeholder
func (z *ZoomableImage) Failed() bool {
	return z.failed.Peek()
}

// CurrentSrc is the source both renders use
func (z *ZoomableImage) CurrentSrc() string {
	if z.failed.Peek() {
		return z.props.Placeholder
	}
	return z.src.Peek()
}

// Props returns the effective props
func (z *ZoomableImage) Props() ImageProps {
	return z.props
}

// Render draws the inline image and, while zoomed, the overlay. The wrapper
// carries the props as data attributes so the client can rebuild the widget.
func (z *ZoomableImage) Render() *vdom.VNode {
	// Subscribe to every field the markup depends on
	src := z.src.Get()
	if z.failed.Get() {
		src = z.props.Placeholder
	}
	zoomed := z.zoomed.Get()
	p := z.props

	var overlay *vdom.VNode
	if zoomed {
		overlay = components.Overlay(components.OverlayProps{
			OnClose: z.Close,
			Class:   "zoom-overlay",
			Content: builder.Img().
				Src(src).
				Alt(p.Alt).
				Width(p.ZoomWidth).
				Height(p.ZoomHeight).
				Class("zoom-image").
				OnError(z.Fail).
				Build(),
		})
	}

	return builder.Span().
		Class("zoomable").
		Attr(attrZoomable, "").
		Attr(attrSrc, z.src.Peek()).
		Attr(attrAlt, p.Alt).
		Attr(attrClass, p.Class).
		Attr(attrWidth, p.Width).
		Attr(attrHeight, p.Height).
		Attr(attrZoomWidth, p.ZoomWidth).
		Attr(attrZoomHeight, p.ZoomHeight).
		Attr(attrPlaceholder, p.Placeholder).
		Children(
			builder.Img().
				Src(src).
				Alt(p.Alt).
				Width(p.Width).
				Height(p.Height).
				Loading("lazy").
				Class(p.Class, "zoomable-image").
				OnClick(z.Open).
				OnError(z.Fail).
				Build(),
			overlay,
		).Build()
}
