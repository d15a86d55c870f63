package paint

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	bodyRatio = 0.92 // share of the sprite height taken by the balloon body
	knotRatio = 0.08
)

// BalloonSVG draws a balloon body filled with g plus its knot as an SVG document
func BalloonSVG(g Gradient, width, height int) []byte {
	w, h := float64(width), float64(height)
	bodyH := h * bodyRatio
	knot := h * knotRatio

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)
	fmt.Fprintf(&b, `<defs><radialGradient id="fill" gradientUnits="objectBoundingBox" cx="%.4f" cy="%.4f" r="%.4f">`,
		g.CX, g.CY, g.Radius())
	for _, s := range g.Stops {
		opacity := float64(s.Color.A) / 0xff
		fmt.Fprintf(&b, `<stop offset="%.4f" stop-color="%s" stop-opacity="%.3f"/>`, s.Offset, Hex(s.Color), opacity)
	}
	b.WriteString(`</radialGradient></defs>`)
	fmt.Fprintf(&b, `<ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="url(#fill)"/>`, w/2, bodyH/2, w/2, bodyH/2)
	fmt.Fprintf(&b, `<path d="M %.2f %.2f L %.2f %.2f L %.2f %.2f Z" fill="%s"/>`,
		w/2-knot/2, h, w/2, bodyH-1, w/2+knot/2, h, Hex(g.Edge()))
	b.WriteString(`</svg>`)
	return b.Bytes()
}

// Rasterize renders an SVG document into a width x height image
func Rasterize(svg []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rasterizing %dx%d: empty target", width, height)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// Balloon parses fill and rasterises a balloon sprite of the given size
func Balloon(fill string, width, height int) (*image.RGBA, error) {
	g, err := ParseGradient(fill)
	if err != nil {
		return nil, err
	}
	return Rasterize(BalloonSVG(g, width, height), width, height)
}

// Fallback is a flat balloon used when a fill cannot be parsed
func Fallback(width, height int) *image.RGBA {
	img, err := Rasterize(BalloonSVG(Solid(color.RGBA{R: 0xf0, G: 0xbb, B: 0x4f, A: 0xff}), width, height), width, height)
	if err != nil {
		return image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	}
	return img
}

// SavePNG writes img to path
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
