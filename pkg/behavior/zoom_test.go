package behavior

import (
	"testing"

	"github.com/cyberinsights/inkwell/pkg/dom/domtest"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

func TestZoomableImage_Defaults(t *testing.T) {
	z := NewZoomableImage(ImageProps{Src: "/images/a.jpg"}, nil)
	p := z.Props()

	if p.Width != 500 || p.Height != 500 || p.ZoomWidth != 800 || p.ZoomHeight != 800 {
		t.Errorf("unexpected sizes: %+v", p)
	}
	if p.Placeholder != "/images/placeholder.jpg" {
		t.Errorf("placeholder = %q", p.Placeholder)
	}
	if z.IsZoomed() || z.Failed() {
		t.Error("new image should be unzoomed and unfailed")
	}
}

func TestZoomableImage_OpenCloseSequences(t *testing.T) {
	type action int
	const (
		open action = iota
		backdrop
		escape
		otherKey
	)

	tests := []struct {
		name    string
		actions []action
		want    bool
	}{
		{"open", []action{open}, true},
		{"open twice stays open", []action{open, open}, true},
		{"backdrop closes", []action{open, backdrop}, false},
		{"escape closes", []action{open, escape}, false},
		{"other keys ignored", []action{open, otherKey}, true},
		{"escape while closed", []action{escape}, false},
		{"backdrop while closed", []action{backdrop}, false},
		{"reopen", []action{open, escape, open, open}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domtest.NewWindow(2000, 800)
			z := NewZoomableImage(ImageProps{Src: "/images/a.jpg"}, nil)
			if err := z.Attach(w); err != nil {
				t.Fatal(err)
			}
			defer z.Detach()

			for _, a := range tt.actions {
				switch a {
				case open:
					click(findTag(z.Render(), "img"))
				case backdrop:
					if o := findClass(z.Render(), "overlay"); o != nil {
						click(o)
					} else {
						z.Close()
					}
				case escape:
					w.Press("Escape")
				case otherKey:
					w.Press("Enter")
				}
			}
			if z.IsZoomed() != tt.want {
				t.Errorf("zoomed = %v, want %v", z.IsZoomed(), tt.want)
			}
		})
	}
}

func TestZoomableImage_OverlayRender(t *testing.T) {
	w := domtest.NewWindow(2000, 800)
	z := NewZoomableImage(ImageProps{Src: "/images/a.jpg", Alt: "diagram"}, nil)
	if err := z.Attach(w); err != nil {
		t.Fatal(err)
	}
	defer z.Detach()

	if findClass(z.Render(), "overlay") != nil {
		t.Fatal("overlay should not render before a click")
	}

	click(findTag(z.Render(), "img"))
	tree := z.Render()
	overlay := findClass(tree, "overlay")
	if overlay == nil {
		t.Fatal("overlay should render after a click")
	}
	zoomed := findTag(overlay, "img")
	if w, _ := zoomed.Attr("width"); w != "800" {
		t.Errorf("zoomed width = %s, want 800", w)
	}

	w.Press("Escape")
	tree = z.Render()
	if findClass(tree, "overlay") != nil {
		t.Error("overlay should close on Escape")
	}
	if img := findTag(tree, "img"); img == nil {
		t.Error("inline image should remain")
	}
}

func TestZoomableImage_StickyFallback(t *testing.T) {
	z := NewZoomableImage(ImageProps{Src: "/images/missing.jpg"}, nil)

	fail(findTag(z.Render(), "img"))
	if !z.Failed() {
		t.Fatal("error handler should mark the image failed")
	}

	z.SetSrc("/images/other.jpg")
	z.Open()

	tree := z.Render()
	inline := findClass(tree, "zoomable-image")
	zoomed := findClass(tree, "zoom-image")
	for name, img := range map[string]*vdom.VNode{"inline": inline, "overlay": zoomed} {
		if img == nil {
			t.Fatalf("%s image missing", name)
		}
		if src, _ := img.Attr("src"); src != "/images/placeholder.jpg" {
			t.Errorf("%s src = %q, want placeholder", name, src)
		}
	}
	if z.CurrentSrc() != "/images/placeholder.jpg" {
		t.Errorf("CurrentSrc() = %q", z.CurrentSrc())
	}
}

func TestZoomableImage_IndependentInstances(t *testing.T) {
	w := domtest.NewWindow(2000, 800)
	a := NewZoomableImage(ImageProps{Src: "/a.jpg"}, nil)
	b := NewZoomableImage(ImageProps{Src: "/b.jpg"}, nil)
	for _, z := range []*ZoomableImage{a, b} {
		if err := z.Attach(w); err != nil {
			t.Fatal(err)
		}
	}

	a.Open()
	b.Fail()

	if b.IsZoomed() {
		t.Error("opening a must not open b")
	}
	if a.Failed() {
		t.Error("b's failure must not affect a")
	}
	if a.CurrentSrc() != "/a.jpg" {
		t.Errorf("a src = %q", a.CurrentSrc())
	}

	// Each instance owns its own key listener
	if got := w.ListenerCountFor("keydown"); got != 2 {
		t.Errorf("keydown listeners = %d, want 2", got)
	}
	b.Detach()
	a.Detach()
	if w.ListenerCount() != 0 {
		t.Errorf("listeners after Detach = %d", w.ListenerCount())
	}
}

func TestImagePropsFromData(t *testing.T) {
	z := NewZoomableImage(ImageProps{
		Src:         "/images/tree.png",
		Alt:         "tree",
		Class:       "rounded-lg",
		Width:       640,
		Height:      360,
		ZoomWidth:   1280,
		ZoomHeight:  720,
		Placeholder: "/images/ph.jpg",
	}, nil)

	root := z.Render()
	if _, ok := root.Attr("data-zoomable"); !ok {
		t.Fatal("wrapper should carry data-zoomable")
	}

	got := ImagePropsFromData(root.Attr)
	if got != z.Props() {
		t.Errorf("ImagePropsFromData() = %+v, want %+v", got, z.Props())
	}

	// Missing and malformed numbers fall back to defaults
	sparse := ImagePropsFromData(func(name string) (string, bool) {
		switch name {
		case "data-src":
			return "/x.jpg", true
		case "data-width":
			return "wide", true
		}
		return "", false
	})
	if sparse.Width != DefaultImageSize || sparse.ZoomHeight != DefaultZoomSize || sparse.Placeholder != DefaultPlaceholder {
		t.Errorf("defaults not applied: %+v", sparse)
	}
}
