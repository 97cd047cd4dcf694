// Package domtest provides a scriptable in-memory dom.Window.
package domtest

import (
	"github.com/cyberinsights/inkwell/pkg/dom"
)

// Event is a synthetic event
type Event struct {
	EventType string
	KeyName   string
	Prevented bool
}

func (e *Event) Type() string    { return e.EventType }
func (e *Event) Key() string     { return e.KeyName }
func (e *Event) PreventDefault() { e.Prevented = true }

// ScrollCall records a ScrollTo request
type ScrollCall struct {
	Y      float64
	Smooth bool
}

type element struct {
	top    float64
	height float64
}

type listener struct {
	w      *Window
	event  string
	fn     func(dom.Event)
	active bool
}

func (l *listener) Remove() {
	if l.active {
		l.active = false
		l.w.liveListeners--
	}
}

type observer struct {
	w         *Window
	ids       []string
	threshold float64
	fn        func([]dom.Intersection)
	visible   map[string]bool
	active    bool
}

func (o *observer) Disconnect() {
	if o.active {
		o.active = false
		o.w.liveObservers--
	}
}

// Window is a fake browser window. Elements are laid out with absolute
// document offsets; scrolling recomputes intersections for every observer the
// way a browser would, delivering entries for elements whose visibility
// crossed the observer threshold.
type Window struct {
	scrollY        float64
	documentHeight float64
	viewportHeight float64

	elements  map[string]element
	listeners []*listener
	observers []*observer

	liveListeners int
	liveObservers int

	Dark        bool
	ScrollCalls []ScrollCall
}

var _ dom.Window = (*Window)(nil)

// NewWindow creates a window over a document of the given height
func NewWindow(documentHeight, viewportHeight float64) *Window {
	return &Window{
		documentHeight: documentHeight,
		viewportHeight: viewportHeight,
		elements:       make(map[string]element),
	}
}

// AddElement places an element with id at a document offset
func (w *Window) AddElement(id string, top, height float64) {
	w.elements[id] = element{top: top, height: height}
}

// SetDocumentHeight simulates content resizing
func (w *Window) SetDocumentHeight(h float64) {
	w.documentHeight = h
}

func (w *Window) AddEventListener(event string, fn func(dom.Event)) dom.Listener {
	l := &listener{w: w, event: event, fn: fn, active: true}
	w.listeners = append(w.listeners, l)
	w.liveListeners++
	return l
}

func (w *Window) ScrollY() float64        { return w.scrollY }
func (w *Window) DocumentHeight() float64 { return w.documentHeight }
func (w *Window) ViewportHeight() float64 { return w.viewportHeight }

func (w *Window) ScrollTo(y float64, smooth bool) {
	w.ScrollCalls = append(w.ScrollCalls, ScrollCall{Y: y, Smooth: smooth})
	w.Scroll(y)
}

func (w *Window) ScrollIntoView(id string, smooth bool) bool {
	el, ok := w.elements[id]
	if !ok {
		return false
	}
	w.ScrollTo(el.top, smooth)
	return true
}

func (w *Window) ObserveIntersections(ids []string, threshold float64, fn func([]dom.Intersection)) dom.Observer {
	o := &observer{
		w:         w,
		threshold: threshold,
		fn:        fn,
		visible:   make(map[string]bool),
		active:    true,
	}
	for _, id := range ids {
		if _, ok := w.elements[id]; ok {
			o.ids = append(o.ids, id)
		}
	}
	w.observers = append(w.observers, o)
	w.liveObservers++

	// Browsers deliver an initial entry for every observed target
	batch := make([]dom.Intersection, 0, len(o.ids))
	for _, id := range o.ids {
		entry := w.entry(id)
		o.visible[id] = entry.Intersecting && entry.Ratio >= threshold
		batch = append(batch, entry)
	}
	if len(batch) > 0 {
		fn(batch)
	}
	return o
}

func (w *Window) SetDarkClass(dark bool) {
	w.Dark = dark
}

// Scroll moves the viewport, clamped to the scrollable range like a browser,
// then dispatches a scroll event and intersection updates.
func (w *Window) Scroll(y float64) {
	limit := w.documentHeight - w.viewportHeight
	if y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}
	w.scrollY = y
	w.Dispatch(&Event{EventType: "scroll"})
	w.recompute()
}

// ScrollRaw sets the offset without clamping, as seen during content resizes
func (w *Window) ScrollRaw(y float64) {
	w.scrollY = y
	w.Dispatch(&Event{EventType: "scroll"})
}

// Press dispatches a keydown event and returns it
func (w *Window) Press(key string) *Event {
	ev := &Event{EventType: "keydown", KeyName: key}
	w.Dispatch(ev)
	return ev
}

// Dispatch delivers ev to the active listeners for its type in registration order
func (w *Window) Dispatch(ev *Event) {
	snapshot := append([]*listener(nil), w.listeners...)
	for _, l := range snapshot {
		if l.active && l.event == ev.EventType {
			l.fn(ev)
		}
	}
}

// Intersect delivers a scripted batch to every active observer
func (w *Window) Intersect(entries ...dom.Intersection) {
	for _, o := range w.observers {
		if o.active {
			o.fn(entries)
		}
	}
}

// ListenerCount returns the number of registered, unremoved listeners
func (w *Window) ListenerCount() int {
	return w.liveListeners
}

// ListenerCountFor returns the active listeners for one event type
func (w *Window) ListenerCountFor(event string) int {
	n := 0
	for _, l := range w.listeners {
		if l.active && l.event == event {
			n++
		}
	}
	return n
}

// ObserverCount returns the number of connected observers
func (w *Window) ObserverCount() int {
	return w.liveObservers
}

func (w *Window) entry(id string) dom.Intersection {
	el := w.elements[id]
	viewTop := w.scrollY
	viewBottom := w.scrollY + w.viewportHeight

	top := el.top
	bottom := el.top + el.height
	if top < viewTop {
		top = viewTop
	}
	if bottom > viewBottom {
		bottom = viewBottom
	}

	ratio := 0.0
	if bottom > top && el.height > 0 {
		ratio = (bottom - top) / el.height
	}
	return dom.Intersection{
		ID:           id,
		Intersecting: ratio > 0,
		Ratio:        ratio,
		Top:          el.top - w.scrollY,
	}
}

func (w *Window) recompute() {
	for _, o := range w.observers {
		if !o.active {
			continue
		}
		var batch []dom.Intersection
		for _, id := range o.ids {
			entry := w.entry(id)
			visible := entry.Intersecting && entry.Ratio >= o.threshold
			if visible != o.visible[id] {
				o.visible[id] = visible
				batch = append(batch, entry)
			}
		}
		if len(batch) > 0 {
			o.fn(batch)
		}
	}
}
