//go:build js && wasm

// Command client is the WebAssembly program pages load to bring the reading
// widgets to life. It hydrates from the #page-data script the server writes
// and mounts one fiber per widget over the server-rendered markup.
package main

import (
	"syscall/js"

	"github.com/cyberinsights/inkwell/pkg/behavior"
	"github.com/cyberinsights/inkwell/pkg/components"
	"github.com/cyberinsights/inkwell/pkg/debug"
	"github.com/cyberinsights/inkwell/pkg/dom"
	rdom "github.com/cyberinsights/inkwell/pkg/renderer/dom"
	"github.com/cyberinsights/inkwell/pkg/scheduler"
)

func main() {
	if debug.Enabled() {
		debug.EnableLogging()
	}

	document := js.Global().Get("document")
	cfg, err := readPageConfig(document)
	if err != nil {
		debug.Logf("inkwell: %v", err)
		select {}
	}

	sched := scheduler.NewScheduler()
	view := behavior.NewView(cfg, sched)

	var roots []*rdom.Root
	mount := func(id string, render scheduler.RenderFunc) {
		host := document.Call("getElementById", id)
		if host.IsNull() || host.IsUndefined() {
			return
		}
		roots = append(roots, rdom.Mount(sched, host, render))
	}

	mount(components.ProgressRootID, view.Progress.Render)
	mount(components.NavbarRootID, view.Navbar)
	mount(components.FooterRootID, view.Footer)
	mount(components.ControlsRootID, view.Controls.Render)
	if view.Spy != nil {
		mount(components.TOCRootID, view.Spy.Render)
	}
	roots = append(roots, mountImages(document, sched, view)...)

	sched.Start()
	if err := view.Attach(dom.Browser()); err != nil {
		debug.Logf("inkwell: attach: %v", err)
	}
	debug.Logf("inkwell: %d widgets mounted", len(roots))

	var unload js.Func
	unload = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		view.Detach()
		for _, r := range roots {
			r.Unmount()
		}
		sched.Stop()
		unload.Release()
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", unload)

	select {}
}

func readPageConfig(document js.Value) (behavior.PageConfig, error) {
	el := document.Call("getElementById", components.PageDataID)
	if el.IsNull() || el.IsUndefined() {
		return behavior.PageConfig{}, nil
	}
	return behavior.ParsePageConfig([]byte(el.Get("textContent").String()))
}

// mountImages replaces every server-rendered zoomable image with a live
// widget built from the element's data attributes.
func mountImages(document js.Value, sched *scheduler.Scheduler, view *behavior.View) []*rdom.Root {
	nodes := document.Call("querySelectorAll", "span[data-zoomable]")
	n := nodes.Get("length").Int()

	// The NodeList is static, so replacing elements while iterating is safe
	roots := make([]*rdom.Root, 0, n)
	for i := 0; i < n; i++ {
		el := nodes.Index(i)
		props := behavior.ImagePropsFromData(func(name string) (string, bool) {
			if !el.Call("hasAttribute", name).Bool() {
				return "", false
			}
			return el.Call("getAttribute", name).String(), true
		})

		img, err := view.AddImage(props)
		if err != nil {
			debug.Logf("inkwell: image %s: %v", props.Src, err)
			continue
		}
		host := document.Call("createElement", "span")
		host.Set("className", "zoomable-host")
		el.Get("parentNode").Call("replaceChild", host, el)
		roots = append(roots, rdom.Mount(sched, host, img.Render))
	}
	return roots
}
