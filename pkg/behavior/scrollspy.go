package behavior

import (
	"github.com/cyberinsights/inkwell/pkg/components"
	"github.com/cyberinsights/inkwell/pkg/dom"
	"github.com/cyberinsights/inkwell/pkg/reactive"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// DefaultSpyThreshold is the visible fraction at which a section counts as in view
const DefaultSpyThreshold = 0.3

// TOCEntry is one section anchor of an article, in document order
type TOCEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ScrollSpyNavigator highlights the table-of-contents entry of the section in view.
//
// Among the sections currently at or above the threshold the first one in
// declared order wins, so a batch reporting several sections at once always
// resolves the same way. When no section is visible the last active one stays
// highlighted.
type ScrollSpyNavigator struct {
	entries   []TOCEntry
	index     map[string]int
	threshold float64

	active  *reactive.State[string]
	visible map[string]bool

	bind *binding
}

// NewScrollSpy creates a navigator over entries. A threshold outside (0,1]
// falls back to DefaultSpyThreshold.
func NewScrollSpy(entries []TOCEntry, threshold float64, sched reactive.Scheduler) *ScrollSpyNavigator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSpyThreshold
	}
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.ID] = i
	}
	return &ScrollSpyNavigator{
		entries:   entries,
		index:     index,
		threshold: threshold,
		active:    reactive.NewState("", sched),
		visible:   make(map[string]bool),
	}
}

// Entries returns the declared sections
func (s *ScrollSpyNavigator) Entries() []TOCEntry {
	return s.entries
}

// Threshold returns the effective visibility threshold
func (s *ScrollSpyNavigator) Threshold() float64 {
	return s.threshold
}

// Attach observes every section anchor. Anchors missing from the page are skipped.
func (s *ScrollSpyNavigator) Attach(w dom.Window) error {
	if s.bind != nil {
		return ErrAlreadyAttached
	}
	s.bind = &binding{win: w}

	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ID
	}
	s.bind.observers = append(s.bind.observers, w.ObserveIntersections(ids, s.threshold, s.Observe))
	return nil
}

// Detach disconnects the observer. Visibility is forgotten; the active id is kept.
func (s *ScrollSpyNavigator) Detach() {
	if s.bind == nil {
		return
	}
	s.bind.release()
	s.bind = nil
	s.visible = make(map[string]bool)
}

// Observe applies one batch of intersection entries
func (s *ScrollSpyNavigator) Observe(batch []dom.Intersection) {
	for _, e := range batch {
		if _, known := s.index[e.ID]; !known {
			continue
		}
		s.visible[e.ID] = e.Intersecting && e.Ratio >= s.threshold
	}

	for _, e := range s.entries {
		if s.visible[e.ID] {
			if s.active.Peek() != e.ID {
				s.active.Set(e.ID)
			}
			return
		}
	}
}

// Active returns the highlighted section id, or "" before any section was seen
func (s *ScrollSpyNavigator) Active() string {
	return s.active.Peek()
}

// IsActive reports whether id is the highlighted section
func (s *ScrollSpyNavigator) IsActive(id string) bool {
	return id != "" && s.active.Peek() == id
}

// Navigate handles a TOC link click: the default jump is suppressed and the
// section is scrolled into view smoothly. Unknown or missing anchors are ignored.
func (s *ScrollSpyNavigator) Navigate(id string, ev dom.Event) {
	if ev != nil {
		ev.PreventDefault()
	}
	if s.bind == nil {
		return
	}
	if _, known := s.index[id]; !known {
		return
	}
	s.bind.win.ScrollIntoView(id, true)
}

// Render draws the table of contents with the active entry highlighted
func (s *ScrollSpyNavigator) Render() *vdom.VNode {
	active := s.active.Get()
	items := make([]components.TOCItem, len(s.entries))
	for i, e := range s.entries {
		items[i] = components.TOCItem{ID: e.ID, Title: e.Title, Active: e.ID == active}
	}
	return components.TableOfContents(items, s.Navigate)
}
