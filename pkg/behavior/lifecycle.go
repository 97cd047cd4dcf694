// Package behavior implements the interactive reading behaviors shared by
// every article page. Each behavior is an explicit state object owned by one
// page view: it registers its browser listeners on Attach and releases them
// on Detach.
package behavior

import (
	"errors"
	"fmt"

	"github.com/cyberinsights/inkwell/pkg/dom"
)

// ErrAlreadyAttached is returned when attaching a behavior that is already attached
var ErrAlreadyAttached = errors.New("behavior: already attached")

// Attachable is anything that binds itself to a window for the lifetime of a view
type Attachable interface {
	Attach(w dom.Window) error
	Detach()
}

// Group attaches its members in order and detaches them in reverse
type Group []Attachable

// Attach attaches every member. On failure the members attached so far are
// detached again.
func (g Group) Attach(w dom.Window) error {
	for i, a := range g {
		if err := a.Attach(w); err != nil {
			for j := i - 1; j >= 0; j-- {
				g[j].Detach()
			}
			return fmt.Errorf("attach %T: %w", a, err)
		}
	}
	return nil
}

// Detach detaches every member in reverse order
func (g Group) Detach() {
	for i := len(g) - 1; i >= 0; i-- {
		g[i].Detach()
	}
}

// binding tracks what one behavior registered on a window
type binding struct {
	win       dom.Window
	listeners []dom.Listener
	observers []dom.Observer
	stops     []func()
}

func (b *binding) listen(event string, fn func(dom.Event)) {
	b.listeners = append(b.listeners, b.win.AddEventListener(event, fn))
}

func (b *binding) release() {
	for _, l := range b.listeners {
		l.Remove()
	}
	for _, o := range b.observers {
		o.Disconnect()
	}
	for _, stop := range b.stops {
		stop()
	}
}
