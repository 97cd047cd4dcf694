// Package dom is the narrow view of the browser that page behaviors use.
// The js && wasm build talks to the real window; tests use domtest.
package dom

// Window is the part of the browser window a behavior may touch
type Window interface {
	// AddEventListener registers fn for events of the given type on the window
	AddEventListener(event string, fn func(Event)) Listener

	ScrollY() float64
	DocumentHeight() float64
	ViewportHeight() float64

	// ScrollTo moves the viewport to vertical offset y
	ScrollTo(y float64, smooth bool)

	// ScrollIntoView scrolls the element with the given id into view.
	// It reports false when no such element exists.
	ScrollIntoView(id string, smooth bool) bool

	// ObserveIntersections watches the elements with the given ids and calls fn
	// with batches of visibility changes. Ids without an element are skipped.
	ObserveIntersections(ids []string, threshold float64, fn func([]Intersection)) Observer

	// SetDarkClass adds or removes the dark class on the document root
	SetDarkClass(dark bool)
}

// Listener is a registered event handler
type Listener interface {
	Remove()
}

// Observer is a registered intersection observer
type Observer interface {
	Disconnect()
}

// Event is a dispatched DOM event
type Event interface {
	Type() string
	// Key is the key name for keyboard events and empty otherwise
	Key() string
	PreventDefault()
}

// Intersection is one entry of an intersection observer batch
type Intersection struct {
	ID           string
	Intersecting bool
	Ratio        float64
	// Top is the element's top edge relative to the viewport
	Top float64
}

// NopListener is returned where nothing was registered
type NopListener struct{}

func (NopListener) Remove() {}

// NopObserver is returned where no observer could be created
type NopObserver struct{}

func (NopObserver) Disconnect() {}
