package components

import (
	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// OverlayProps defines the properties for the Overlay component
type OverlayProps struct {
	Content *vdom.VNode
	// OnClose fires on any click inside the backdrop
	OnClose func()
	Class   string
}

// Overlay is a full-viewport dimmed backdrop centring its content
func Overlay(props OverlayProps) *vdom.VNode {
	overlay := builder.Div().
		Class("overlay", props.Class).
		Role("dialog").
		Aria("modal", "true")

	if props.OnClose != nil {
		overlay.OnClick(props.OnClose)
	}

	return overlay.Children(props.Content).Build()
}
