package components

import (
	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// FabPosition is the corner a floating button sits in
type FabPosition string

const (
	FabLeft  FabPosition = "left"
	FabRight FabPosition = "right"
)

// ButtonProps defines the properties for the Button component
type ButtonProps struct {
	Label     string
	AriaLabel string
	OnClick   func()
	Class     string
	ID        string
}

// Button creates a plain button
func Button(props ButtonProps) *vdom.VNode {
	b := builder.Button().
		Type("button").
		Class("btn", props.Class).
		Text(props.Label)

	if props.ID != "" {
		b.ID(props.ID)
	}
	if props.AriaLabel != "" {
		b.Aria("label", props.AriaLabel)
	}
	if props.OnClick != nil {
		b.OnClick(props.OnClick)
	}
	return b.Build()
}

// FloatingButton is a round, fixed-position action button
func FloatingButton(position FabPosition, props ButtonProps) *vdom.VNode {
	if position == "" {
		position = FabRight
	}
	props.Class = joinClasses("fab", "fab-"+string(position), props.Class)
	return Button(props)
}

func joinClasses(classes ...string) string {
	out := ""
	for _, c := range classes {
		if c == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += c
	}
	return out
}
