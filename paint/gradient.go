package paint

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Stop is one colour stop, Offset in [0, 1]
type Stop struct {
	Color  color.RGBA
	Offset float64
}

// Gradient is a radial fill centred at (CX, CY), both fractions of the box
type Gradient struct {
	CX, CY float64
	Stops  []Stop
}

// Solid returns a single-colour gradient
func Solid(c color.RGBA) Gradient {
	return Gradient{CX: 0.5, CY: 0.5, Stops: []Stop{{Color: c, Offset: 0}, {Color: c, Offset: 1}}}
}

// Radius is the distance from the centre to the farthest corner of the
// unit box, which is where the last stop lands
func (g Gradient) Radius() float64 {
	return math.Hypot(max(g.CX, 1-g.CX), max(g.CY, 1-g.CY))
}

// At samples the gradient at t in [0, 1] along its radius
func (g Gradient) At(t float64) color.RGBA {
	if len(g.Stops) == 0 {
		return color.RGBA{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerp(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g.Stops[len(g.Stops)-1].Color
}

// Edge returns the outermost colour, used for strings and knots
func (g Gradient) Edge() color.RGBA {
	if len(g.Stops) == 0 {
		return color.RGBA{}
	}
	return g.Stops[len(g.Stops)-1].Color
}

func lerp(a, b color.RGBA, k float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*k + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// ParseGradient reads a radial-gradient() descriptor such as
// "radial-gradient(circle at 30% 30%, #fff6d6, #f0b444 60%, #c8862b)".
// A bare colour is accepted as a solid fill. Stops without a position are
// spread evenly between their positioned neighbours.
func ParseGradient(s string) (Gradient, error) {
	s = strings.TrimSpace(s)
	const prefix = "radial-gradient("
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		c, err := ParseColor(s)
		if err != nil {
			return Gradient{}, fmt.Errorf("parsing fill %q: %w", s, err)
		}
		return Solid(c), nil
	}
	if !strings.HasSuffix(s, ")") {
		return Gradient{}, fmt.Errorf("parsing fill %q: missing closing parenthesis", s)
	}

	args := splitArgs(s[len(prefix) : len(s)-1])
	g := Gradient{CX: 0.5, CY: 0.5}
	if len(args) > 0 && isShape(args[0]) {
		cx, cy, err := parsePosition(args[0])
		if err != nil {
			return Gradient{}, fmt.Errorf("parsing fill %q: %w", s, err)
		}
		g.CX, g.CY = cx, cy
		args = args[1:]
	}
	if len(args) == 0 {
		return Gradient{}, fmt.Errorf("parsing fill %q: no colour stops", s)
	}

	offsets := make([]float64, len(args))
	for i, a := range args {
		c, off, err := parseStop(a)
		if err != nil {
			return Gradient{}, fmt.Errorf("parsing fill %q: %w", s, err)
		}
		g.Stops = append(g.Stops, Stop{Color: c})
		offsets[i] = off
	}
	fillOffsets(offsets)
	for i := range g.Stops {
		g.Stops[i].Offset = offsets[i]
	}
	if len(g.Stops) == 1 {
		g.Stops = append(g.Stops, Stop{Color: g.Stops[0].Color, Offset: 1})
	}
	return g, nil
}

// splitArgs splits on top-level commas so rgba(...) stays whole
func splitArgs(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func isShape(arg string) bool {
	f := strings.Fields(strings.ToLower(arg))
	if len(f) == 0 {
		return false
	}
	switch f[0] {
	case "circle", "ellipse", "at", "closest-side", "closest-corner", "farthest-side", "farthest-corner":
		return true
	}
	return false
}

func parsePosition(arg string) (float64, float64, error) {
	f := strings.Fields(strings.ToLower(arg))
	at := -1
	for i, w := range f {
		if w == "at" {
			at = i
			break
		}
	}
	if at < 0 {
		return 0.5, 0.5, nil
	}
	pos := f[at+1:]
	if len(pos) == 0 || len(pos) > 2 {
		return 0, 0, fmt.Errorf("bad gradient position %q", arg)
	}
	x, err := parsePercent(pos[0])
	if err != nil {
		return 0, 0, err
	}
	y := 0.5
	if len(pos) == 2 {
		if y, err = parsePercent(pos[1]); err != nil {
			return 0, 0, err
		}
	}
	return x, y, nil
}

func parsePercent(s string) (float64, error) {
	switch s {
	case "left", "top":
		return 0, nil
	case "center":
		return 0.5, nil
	case "right", "bottom":
		return 1, nil
	}
	if !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("expected a percentage, got %q", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("bad percentage %q: %w", s, err)
	}
	return v / 100, nil
}

// parseStop returns the colour and offset of "color [pct]"; a missing
// offset comes back as NaN
func parseStop(arg string) (color.RGBA, float64, error) {
	colour, pos := arg, ""
	if i := strings.LastIndexByte(arg, ' '); i > 0 && !strings.HasSuffix(arg, ")") {
		colour, pos = strings.TrimSpace(arg[:i]), arg[i+1:]
	}
	c, err := ParseColor(colour)
	if err != nil {
		return color.RGBA{}, 0, err
	}
	if pos == "" {
		return c, math.NaN(), nil
	}
	off, err := parsePercent(pos)
	if err != nil {
		return color.RGBA{}, 0, err
	}
	return c, off, nil
}

// fillOffsets resolves missing offsets: the ends default to 0 and 1,
// gaps are spread evenly and every offset is at least its predecessor
func fillOffsets(offs []float64) {
	n := len(offs)
	if math.IsNaN(offs[0]) {
		offs[0] = 0
	}
	if n > 1 && math.IsNaN(offs[n-1]) {
		offs[n-1] = 1
	}
	for i := 1; i < n; i++ {
		if !math.IsNaN(offs[i]) {
			offs[i] = max(offs[i], offs[i-1])
			continue
		}
		j := i
		for math.IsNaN(offs[j]) {
			j++
		}
		end := max(offs[j], offs[i-1])
		step := (end - offs[i-1]) / float64(j-i+1)
		for k := i; k < j; k++ {
			offs[k] = offs[i-1] + step*float64(k-i+1)
		}
	}
}
