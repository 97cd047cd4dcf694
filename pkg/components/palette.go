package components

// Palette is the set of chrome classes a page paints with. Every piece of
// chrome reads it from the current theme at render time.
type Palette struct {
	Page    string
	Surface string
	Heading string
	Body    string
	Muted   string
	Border  string
	Dark    bool
}

var (
	lightPalette = Palette{
		Page:    "bg-gray-100 text-gray-800",
		Surface: "bg-white",
		Heading: "text-gray-800",
		Body:    "text-gray-600",
		Muted:   "text-gray-500",
		Border:  "border-gray-200",
	}
	darkPalette = Palette{
		Page:    "bg-gray-900 text-gray-200",
		Surface: "bg-gray-800",
		Heading: "text-white",
		Body:    "text-gray-400",
		Muted:   "text-gray-300",
		Border:  "border-gray-700",
		Dark:    true,
	}
)

// PaletteFor returns the palette for the given theme
func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}
