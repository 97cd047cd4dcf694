//go:build js && wasm

package dom

import (
	"sync"
	"syscall/js"
)

type browserWindow struct {
	win js.Value
	doc js.Value
}

// Browser returns the Window backed by the global window object
func Browser() Window {
	return &browserWindow{
		win: js.Global().Get("window"),
		doc: js.Global().Get("document"),
	}
}

func (w *browserWindow) AddEventListener(event string, fn func(Event)) Listener {
	return Listen(w.win, event, fn)
}

func (w *browserWindow) ScrollY() float64 {
	return w.win.Get("scrollY").Float()
}

func (w *browserWindow) DocumentHeight() float64 {
	return w.doc.Get("documentElement").Get("scrollHeight").Float()
}

func (w *browserWindow) ViewportHeight() float64 {
	return w.win.Get("innerHeight").Float()
}

func (w *browserWindow) ScrollTo(y float64, smooth bool) {
	w.win.Call("scrollTo", map[string]interface{}{
		"top":      y,
		"behavior": behavior(smooth),
	})
}

func (w *browserWindow) ScrollIntoView(id string, smooth bool) bool {
	el := w.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return false
	}
	el.Call("scrollIntoView", map[string]interface{}{"behavior": behavior(smooth)})
	return true
}

func (w *browserWindow) ObserveIntersections(ids []string, threshold float64, fn func([]Intersection)) Observer {
	ctor := js.Global().Get("IntersectionObserver")
	if ctor.IsUndefined() {
		return NopObserver{}
	}

	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return nil
		}
		entries := args[0]
		n := entries.Length()
		batch := make([]Intersection, 0, n)
		for i := 0; i < n; i++ {
			e := entries.Index(i)
			batch = append(batch, Intersection{
				ID:           e.Get("target").Get("id").String(),
				Intersecting: e.Get("isIntersecting").Bool(),
				Ratio:        e.Get("intersectionRatio").Float(),
				Top:          e.Get("boundingClientRect").Get("top").Float(),
			})
		}
		fn(batch)
		return nil
	})

	obs := ctor.New(cb, map[string]interface{}{"threshold": threshold})
	for _, id := range ids {
		el := w.doc.Call("getElementById", id)
		if el.IsNull() || el.IsUndefined() {
			continue
		}
		obs.Call("observe", el)
	}
	return &browserObserver{obs: obs, cb: cb}
}

func (w *browserWindow) SetDarkClass(dark bool) {
	w.doc.Get("documentElement").Get("classList").Call("toggle", "dark", dark)
}

func behavior(smooth bool) string {
	if smooth {
		return "smooth"
	}
	return "auto"
}

// Listen registers fn on any event target and returns a Listener that
// removes it and releases the callback.
func Listen(target js.Value, event string, fn func(Event)) Listener {
	f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			fn(WrapEvent(args[0]))
		}
		return nil
	})
	target.Call("addEventListener", event, f)
	return &browserListener{target: target, event: event, fn: f}
}

type browserListener struct {
	target js.Value
	event  string
	fn     js.Func
	once   sync.Once
}

func (l *browserListener) Remove() {
	l.once.Do(func() {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	})
}

type browserObserver struct {
	obs  js.Value
	cb   js.Func
	once sync.Once
}

func (o *browserObserver) Disconnect() {
	o.once.Do(func() {
		o.obs.Call("disconnect")
		o.cb.Release()
	})
}

type browserEvent struct {
	v js.Value
}

// WrapEvent adapts a JS event object
func WrapEvent(v js.Value) Event {
	return browserEvent{v: v}
}

func (e browserEvent) Type() string {
	return e.v.Get("type").String()
}

func (e browserEvent) Key() string {
	k := e.v.Get("key")
	if k.Type() != js.TypeString {
		return ""
	}
	return k.String()
}

func (e browserEvent) PreventDefault() {
	e.v.Call("preventDefault")
}
