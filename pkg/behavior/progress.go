package behavior

import (
	"github.com/cyberinsights/inkwell/pkg/components"
	"github.com/cyberinsights/inkwell/pkg/dom"
	"github.com/cyberinsights/inkwell/pkg/reactive"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// Progress returns how far through the document the viewport is, in percent:
// 100 × scrollY / (documentHeight − viewportHeight), clamped to [0,100].
// A document that fits in the viewport has no scroll range and reports 0.
func Progress(scrollY, documentHeight, viewportHeight float64) float64 {
	scrollable := documentHeight - viewportHeight
	if scrollable <= 0 {
		return 0
	}
	p := 100 * scrollY / scrollable
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// ReadingProgressIndicator tracks Progress on every scroll event
type ReadingProgressIndicator struct {
	percent *reactive.State[float64]
	bind    *binding
}

// NewReadingProgress creates an indicator at 0%
func NewReadingProgress(sched reactive.Scheduler) *ReadingProgressIndicator {
	return &ReadingProgressIndicator{percent: reactive.NewState(0.0, sched)}
}

// Attach starts listening for scroll events and takes an initial reading
func (r *ReadingProgressIndicator) Attach(w dom.Window) error {
	if r.bind != nil {
		return ErrAlreadyAttached
	}
	r.bind = &binding{win: w}
	r.bind.listen("scroll", func(dom.Event) { r.Update() })
	r.Update()
	return nil
}

// Detach stops listening
func (r *ReadingProgressIndicator) Detach() {
	if r.bind == nil {
		return
	}
	r.bind.release()
	r.bind = nil
}

// Update recomputes progress from the attached window
func (r *ReadingProgressIndicator) Update() {
	if r.bind == nil {
		return
	}
	w := r.bind.win
	r.percent.Set(Progress(w.ScrollY(), w.DocumentHeight(), w.ViewportHeight()))
}

// Value returns the last computed percentage
func (r *ReadingProgressIndicator) Value() float64 {
	return r.percent.Peek()
}

// Render draws the fixed progress bar
func (r *ReadingProgressIndicator) Render() *vdom.VNode {
	return components.ProgressBar(r.percent.Get())
}
