package behavior

import (
	"strings"

	"github.com/cyberinsights/inkwell/pkg/dom"
	"github.com/cyberinsights/inkwell/pkg/dom/domtest"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}

// findTag returns the first element with the given tag
func findTag(root *vdom.VNode, tag string) *vdom.VNode {
	return root.Find(func(n *vdom.VNode) bool { return n.Tag == tag })
}

// findClass returns the first element whose class list contains class
func findClass(root *vdom.VNode, class string) *vdom.VNode {
	return root.Find(func(n *vdom.VNode) bool {
		c, _ := n.Attr("class")
		for _, f := range strings.Fields(c) {
			if f == class {
				return true
			}
		}
		return false
	})
}

// countClass counts elements whose class list contains class
func countClass(root *vdom.VNode, class string) int {
	n := 0
	var walk func(v *vdom.VNode)
	walk = func(v *vdom.VNode) {
		c, _ := v.Attr("class")
		for _, f := range strings.Fields(c) {
			if f == class {
				n++
				break
			}
		}
		for i := range v.Kids {
			walk(&v.Kids[i])
		}
	}
	walk(root)
	return n
}

// click invokes an element's click handler and returns the event it saw
func click(n *vdom.VNode) *domtest.Event {
	ev := &domtest.Event{EventType: "click"}
	switch h := n.Props["onClick"].(type) {
	case func():
		h()
	case func(dom.Event):
		h(ev)
	}
	return ev
}

// fail invokes an element's error handler
func fail(n *vdom.VNode) {
	if h, ok := n.Props["onError"].(func()); ok {
		h()
	}
}
