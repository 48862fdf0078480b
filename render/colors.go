package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a display-independent 8-bit color
type RGB struct {
	R, G, B uint8
}

// Tcell converts to a terminal color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Palette holds the colors used for every entity kind
type Palette struct {
	Background colorful.Color
	Border     colorful.Color
	Head       colorful.Color
	Tail       colorful.Color
	Coin       colorful.Color
	Text       colorful.Color
}

// DefaultPalette is a dark theme with an aquamarine coin
var DefaultPalette = MustPalette(map[string]string{
	"background": "#1a1b26",
	"border":     "#565f89",
	"head":       "#9ece6a",
	"tail":       "#2f5f2a",
	"coin":       "#7fffd4",
	"text":       "#c0caf5",
})

// bodyGradientSteps is how many segments it takes to fade from head to tail color
const bodyGradientSteps = 16

// NewPalette parses hex colors keyed by entity name
func NewPalette(hex map[string]string) (Palette, error) {
	var p Palette
	targets := map[string]*colorful.Color{
		"background": &p.Background,
		"border":     &p.Border,
		"head":       &p.Head,
		"tail":       &p.Tail,
		"coin":       &p.Coin,
		"text":       &p.Text,
	}

	for name, dst := range targets {
		s, ok := hex[name]
		if !ok {
			return Palette{}, fmt.Errorf("palette: missing color '%s'", name)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return Palette{}, fmt.Errorf("palette: color '%s': %w", name, err)
		}
		*dst = c
	}
	return p, nil
}

// MustPalette is NewPalette that panics on error, for package-level defaults
func MustPalette(hex map[string]string) Palette {
	p, err := NewPalette(hex)
	if err != nil {
		panic(err)
	}
	return p
}

// Segment returns the body color for segment index i, blending head to tail in Lab space
func (p Palette) Segment(i int) RGB {
	if i <= 0 {
		return toRGB(p.Head)
	}
	t := float64(i) / bodyGradientSteps
	if t > 1 {
		t = 1
	}
	return toRGB(p.Head.BlendLab(p.Tail, t).Clamped())
}

func (p Palette) CoinRGB() RGB       { return toRGB(p.Coin) }
func (p Palette) BorderRGB() RGB     { return toRGB(p.Border) }
func (p Palette) TextRGB() RGB       { return toRGB(p.Text) }
func (p Palette) BackgroundRGB() RGB { return toRGB(p.Background) }

func toRGB(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}
