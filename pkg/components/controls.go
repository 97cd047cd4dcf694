package components

import (
	"strconv"

	"github.com/cyberinsights/inkwell/pkg/vdom"
	"github.com/cyberinsights/inkwell/pkg/vex/builder"
)

// ProgressBar is the fixed reading-progress bar. percent is expected in [0,100].
func ProgressBar(percent float64) *vdom.VNode {
	width := strconv.FormatFloat(percent, 'f', 1, 64)
	return builder.Div().
		Class("progress-track").
		Role("progressbar").
		Aria("valuemin", "0").
		Aria("valuemax", "100").
		Aria("valuenow", width).
		Children(
			builder.Div().
				Class("progress-fill").
				Style("width:" + width + "%").
				Build(),
		).Build()
}

// DarkModeToggle shows the icon of the theme a click switches to
func DarkModeToggle(dark bool, onToggle func()) *vdom.VNode {
	icon := "🌙"
	if dark {
		icon = "☀️"
	}
	return FloatingButton(FabLeft, ButtonProps{
		Label:     icon,
		AriaLabel: "Toggle Dark Mode",
		OnClick:   onToggle,
		Class:     "theme-toggle",
	})
}

// BackToTopButton renders nothing while hidden
func BackToTopButton(visible bool, onClick func()) *vdom.VNode {
	if !visible {
		return nil
	}
	return FloatingButton(FabRight, ButtonProps{
		Label:     "↑",
		AriaLabel: "Back to Top",
		OnClick:   onClick,
		Class:     "back-to-top",
	})
}
