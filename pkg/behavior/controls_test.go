package behavior

import (
	"testing"

	"github.com/cyberinsights/inkwell/pkg/components"
	"github.com/cyberinsights/inkwell/pkg/dom/domtest"
)

func TestBackToTop_Threshold(t *testing.T) {
	tests := []struct {
		scrollY float64
		want    bool
	}{
		{0, false},
		{150, false},
		{300, false},
		{300.5, true},
		{301, true},
		{2000, true},
	}

	w := domtest.NewWindow(5000, 800)
	b := NewBackToTop(0, nil)
	if err := b.Attach(w); err != nil {
		t.Fatal(err)
	}
	defer b.Detach()

	for _, tt := range tests {
		w.Scroll(tt.scrollY)
		if got := b.Visible(); got != tt.want {
			t.Errorf("scrollY=%v visible=%v, want %v", tt.scrollY, got, tt.want)
		}
	}
}

func TestBackToTop_AttachReadsCurrentOffset(t *testing.T) {
	w := domtest.NewWindow(5000, 800)
	w.Scroll(1200)

	b := NewBackToTop(300, nil)
	if err := b.Attach(w); err != nil {
		t.Fatal(err)
	}
	defer b.Detach()

	if !b.Visible() {
		t.Error("button should show when attached below the threshold")
	}
}

// Scroll past 300px, click the button: offset returns to 0 and the button hides
func TestFloatingControls_BackToTopScenario(t *testing.T) {
	w := domtest.NewWindow(5000, 800)
	c := NewFloatingControls(300, nil)
	if err := c.Attach(w); err != nil {
		t.Fatal(err)
	}
	defer c.Detach()

	if findClass(c.Render(), "back-to-top") != nil {
		t.Fatal("button should be hidden at the top")
	}

	w.Scroll(450)
	button := findClass(c.Render(), "back-to-top")
	if button == nil {
		t.Fatal("button should appear past the threshold")
	}

	click(button)
	if w.ScrollY() != 0 {
		t.Errorf("scrollY = %v, want 0", w.ScrollY())
	}
	if last := w.ScrollCalls[len(w.ScrollCalls)-1]; !last.Smooth {
		t.Error("scroll to top should be smooth")
	}
	if c.BackToTop.Visible() || findClass(c.Render(), "back-to-top") != nil {
		t.Error("button should hide again at the top")
	}
}

func TestTheme_Involution(t *testing.T) {
	for _, start := range []bool{false, true} {
		th := NewTheme(nil)
		if start {
			th.Toggle()
		}
		before := th.Palette()

		th.Toggle()
		th.Toggle()

		if th.Dark() != start {
			t.Errorf("two toggles from dark=%v ended at %v", start, th.Dark())
		}
		if th.Palette() != before {
			t.Errorf("palette changed after two toggles from dark=%v", start)
		}
	}
}

// Toggle dark mode: chrome colors switch and the document root gets the dark class;
// toggling again restores the original colors.
func TestFloatingControls_ThemeScenario(t *testing.T) {
	w := domtest.NewWindow(5000, 800)
	c := NewFloatingControls(300, nil)
	if err := c.Attach(w); err != nil {
		t.Fatal(err)
	}
	defer c.Detach()

	light := c.Theme.Palette()
	if light != components.PaletteFor(false) || w.Dark {
		t.Fatal("views start light")
	}

	click(findClass(c.Render(), "theme-toggle"))
	dark := c.Theme.Palette()
	if !w.Dark {
		t.Error("document root should carry the dark class")
	}
	if dark.Page == light.Page || dark.Surface == light.Surface || dark.Heading == light.Heading {
		t.Errorf("chrome did not switch: %+v", dark)
	}

	click(findClass(c.Render(), "theme-toggle"))
	if w.Dark || c.Theme.Palette() != light {
		t.Error("second toggle should restore the light theme")
	}
}

func TestTheme_DetachStopsMirroring(t *testing.T) {
	w := domtest.NewWindow(5000, 800)
	th := NewTheme(nil)
	if err := th.Attach(w); err != nil {
		t.Fatal(err)
	}
	th.Detach()

	th.Toggle()
	if w.Dark {
		t.Error("detached theme must not touch the document")
	}
}
