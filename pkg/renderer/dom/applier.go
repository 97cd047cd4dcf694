//go:build js && wasm

package dom

import (
	"fmt"
	"syscall/js"

	pagedom "github.com/cyberinsights/inkwell/pkg/dom"
	"github.com/cyberinsights/inkwell/pkg/scheduler"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// handlerKey is the JS property under which an element's handler set id is stored
const handlerKey = "__inkwellHandlers"

// Root is one widget mounted into a container element. The widget's tree
// lives as the container's only child; patch paths are resolved from it.
type Root struct {
	document  js.Value
	container js.Value
	sched     *scheduler.Scheduler
	fiber     *scheduler.Fiber

	handlers map[int]map[string]js.Func
	nextSet  int

	// OnError receives patch failures; defaults to console.error
	OnError func(error)
}

// Mount clears container and binds a new fiber rendering into it. The first
// render happens on the scheduler's next Flush or loop iteration.
func Mount(sched *scheduler.Scheduler, container js.Value, render scheduler.RenderFunc) *Root {
	r := &Root{
		document:  js.Global().Get("document"),
		container: container,
		sched:     sched,
		handlers:  make(map[int]map[string]js.Func),
		nextSet:   1,
	}
	container.Set("innerHTML", "")

	r.fiber = sched.CreateFiber(render, nil)
	r.fiber.SetPatchApplier(func(patches []vdom.Patch) {
		if err := r.Apply(patches); err != nil {
			r.reportError(err)
		}
	})
	return r
}

// Fiber returns the fiber driving this root
func (r *Root) Fiber() *scheduler.Fiber {
	return r.fiber
}

// Unmount removes the fiber, releases every handler and empties the container
func (r *Root) Unmount() {
	if r.fiber == nil {
		return
	}
	r.sched.RemoveFiber(r.fiber)
	r.fiber = nil

	r.releaseTree(r.container)
	r.container.Set("innerHTML", "")
}

func (r *Root) reportError(err error) {
	if r.OnError != nil {
		r.OnError(err)
		return
	}
	js.Global().Get("console").Call("error", fmt.Sprintf("[DOM] %v", err))
}

// Apply applies patches in order
func (r *Root) Apply(patches []vdom.Patch) error {
	for _, patch := range patches {
		if err := r.applyPatch(patch); err != nil {
			return fmt.Errorf("failed to apply patch %v: %w", patch, err)
		}
	}
	return nil
}

func (r *Root) applyPatch(patch vdom.Patch) error {
	switch patch.Op {
	case vdom.OpInsertNode:
		return r.insertNode(patch)
	case vdom.OpRemoveNode:
		return r.removeNode(patch)
	case vdom.OpReplaceNode:
		return r.replaceNode(patch)
	}

	node, err := r.resolve(patch.Path)
	if err != nil {
		return err
	}

	switch patch.Op {
	case vdom.OpReplaceText:
		node.Set("nodeValue", patch.Value)
	case vdom.OpSetAttribute:
		setAttribute(node, patch.Key, patch.Value)
	case vdom.OpRemoveAttribute:
		removeAttribute(node, patch.Key)
	case vdom.OpUpdateEvents:
		r.attachEventHandlers(node, patch.Node.Props)
	default:
		return fmt.Errorf("unknown patch operation: %v", patch.Op)
	}
	return nil
}

// resolve walks the child index path from the container's first child
func (r *Root) resolve(path []int) (js.Value, error) {
	node := r.container.Get("firstChild")
	if node.IsNull() {
		return js.Null(), fmt.Errorf("nothing mounted")
	}
	for depth, idx := range path {
		children := node.Get("childNodes")
		if idx >= children.Length() {
			return js.Null(), fmt.Errorf("path %v: index %d out of range at depth %d", path, idx, depth)
		}
		node = children.Index(idx)
	}
	return node, nil
}

// parentOf resolves the parent element of the node at path
func (r *Root) parentOf(path []int) (js.Value, int, error) {
	if len(path) == 0 {
		return r.container, 0, nil
	}
	parent, err := r.resolve(path[:len(path)-1])
	return parent, path[len(path)-1], err
}

func (r *Root) insertNode(patch vdom.Patch) error {
	if patch.Node == nil {
		return fmt.Errorf("insert patch missing node")
	}
	parent, idx, err := r.parentOf(patch.Path)
	if err != nil {
		return err
	}

	created := r.create(patch.Node)
	children := parent.Get("childNodes")
	if idx < children.Length() {
		parent.Call("insertBefore", created, children.Index(idx))
	} else {
		parent.Call("appendChild", created)
	}
	return nil
}

func (r *Root) removeNode(patch vdom.Patch) error {
	node, err := r.resolve(patch.Path)
	if err != nil {
		return err
	}
	r.releaseTree(node)
	node.Get("parentNode").Call("removeChild", node)
	return nil
}

func (r *Root) replaceNode(patch vdom.Patch) error {
	node, err := r.resolve(patch.Path)
	if err != nil {
		return err
	}
	r.releaseTree(node)
	node.Get("parentNode").Call("replaceChild", r.create(patch.Node), node)
	return nil
}

// create builds DOM for a VNode. Fragments and raw markup get a
// display:contents wrapper so each VNode owns exactly one DOM node.
func (r *Root) create(vnode *vdom.VNode) js.Value {
	switch vnode.Kind {
	case vdom.KindText:
		return r.document.Call("createTextNode", vnode.Text)

	case vdom.KindRaw:
		wrapper := r.document.Call("createElement", "div")
		wrapper.Call("setAttribute", "style", "display:contents")
		wrapper.Set("innerHTML", vnode.Text)
		return wrapper

	case vdom.KindFragment:
		wrapper := r.document.Call("createElement", "div")
		wrapper.Call("setAttribute", "style", "display:contents")
		for i := range vnode.Kids {
			wrapper.Call("appendChild", r.create(&vnode.Kids[i]))
		}
		return wrapper

	default:
		elem := r.document.Call("createElement", vnode.Tag)
		for _, key := range vnode.Props.SortedKeys() {
			if key == "key" || vdom.IsEventProp(key) {
				continue
			}
			if b, ok := vnode.Props[key].(bool); ok && !b {
				continue
			}
			setAttribute(elem, key, vdom.PropToString(vnode.Props[key]))
		}
		if vnode.HasFlag(vdom.FlagHasEvents) {
			r.attachEventHandlers(elem, vnode.Props)
		}
		for i := range vnode.Kids {
			elem.Call("appendChild", r.create(&vnode.Kids[i]))
		}
		return elem
	}
}

func setAttribute(node js.Value, key, value string) {
	switch key {
	case "class":
		node.Set("className", value)
	case "checked", "selected", "disabled", "hidden":
		node.Set(key, value == "true")
	case "value":
		node.Set("value", value)
	default:
		node.Call("setAttribute", key, value)
	}
}

func removeAttribute(node js.Value, key string) {
	switch key {
	case "class":
		node.Set("className", "")
	case "checked", "selected", "disabled", "hidden":
		node.Set(key, false)
	default:
		node.Call("removeAttribute", key)
	}
}

// attachEventHandlers replaces the element's listeners with those in props
func (r *Root) attachEventHandlers(elem js.Value, props vdom.Props) {
	r.releaseHandlers(elem)

	handlers := make(map[string]js.Func)
	for _, key := range props.SortedKeys() {
		if !vdom.IsEventProp(key) {
			continue
		}
		eventName := vdom.EventName(key)

		var fn js.Func
		switch h := props[key].(type) {
		case func():
			fn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				h()
				return nil
			})
		case func(pagedom.Event):
			fn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				if len(args) > 0 {
					h(pagedom.WrapEvent(args[0]))
				}
				return nil
			})
		default:
			continue
		}

		elem.Call("addEventListener", eventName, fn)
		handlers[eventName] = fn
	}

	if len(handlers) == 0 {
		return
	}
	id := r.nextSet
	r.nextSet++
	r.handlers[id] = handlers
	elem.Set(handlerKey, id)
}

func (r *Root) releaseHandlers(elem js.Value) {
	v := elem.Get(handlerKey)
	if v.Type() != js.TypeNumber {
		return
	}
	id := v.Int()
	for eventName, fn := range r.handlers[id] {
		elem.Call("removeEventListener", eventName, fn)
		fn.Release()
	}
	delete(r.handlers, id)
	elem.Delete(handlerKey)
}

// releaseTree releases handlers for node and all of its descendants
func (r *Root) releaseTree(node js.Value) {
	if node.Get("nodeType").Int() != 1 {
		return
	}
	r.releaseHandlers(node)
	children := node.Get("childNodes")
	for i := 0; i < children.Length(); i++ {
		r.releaseTree(children.Index(i))
	}
}

// HandlerCount returns the number of live handler sets
func (r *Root) HandlerCount() int {
	return len(r.handlers)
}
