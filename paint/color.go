// Package paint turns balloon fill descriptors into pixels: it parses CSS
// style colours and radial gradients and rasterises balloon sprites.
package paint

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"github.com/srwiley/oksvg"
)

// ParseColor accepts the SVG forms (#rgb, #rrggbb, rgb(), hsl() and the
// colour keywords) plus the CSS-only #rgba, #rrggbbaa, rgba() and
// "transparent". The result is premultiplied.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return color.RGBA{}, errors.New("empty colour")
	}
	if c, err := oksvg.ParseSVGColor(s); err == nil && c != nil {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		return premultiply(n.R, n.G, n.B, n.A), nil
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("unknown colour %q: %w", s, err)
	}
	return premultiply(to8(c.R), to8(c.G), to8(c.B), to8(c.A)), nil
}

func to8(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 0xff))
}

func premultiply(r, g, b, a uint8) color.RGBA {
	if a == 0xff {
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
	m := func(c uint8) uint8 { return uint8(uint16(c) * uint16(a) / 0xff) }
	return color.RGBA{R: m(r), G: m(g), B: m(b), A: a}
}

// Hex formats c as #rrggbb, undoing premultiplication
func Hex(c color.RGBA) string {
	if c.A == 0 {
		return "#000000"
	}
	un := func(v uint8) uint8 { return uint8(min(uint16(v)*0xff/uint16(c.A), 0xff)) }
	return fmt.Sprintf("#%02x%02x%02x", un(c.R), un(c.G), un(c.B))
}
