package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"balloonsim/geom"
	"balloonsim/scene"
)

const (
	cullMargin     = 100.0 // px beyond the viewport still drawn
	stringSegments = 12
	stringWidth    = 1.5
)

var (
	backgroundColor = colornames.Ivory
	stringColor     = color.RGBA{0x8a, 0x7f, 0x76, 0xff}
	boundsColor     = color.RGBA{0xff, 0x40, 0x80, 0xa0}
	sectionColor    = color.RGBA{0xf3, 0xec, 0xe0, 0xff}
)

// Renderer draws a page's balloons
type Renderer struct {
	sprites *Sprites
	points  []geom.Vec2
}

// NewRenderer creates a renderer drawing from sprites
func NewRenderer(sprites *Sprites) *Renderer {
	return &Renderer{
		sprites: sprites,
		points:  make([]geom.Vec2, 0, stringSegments+1),
	}
}

// Render draws every balloon back to front
func (r *Renderer) Render(screen *ebiten.Image, page *scene.Page, debug DebugState) {
	screen.Fill(backgroundColor)

	vp := page.Viewport()
	contact := page.ContactSection().Bounds()
	if visible(contact, vp) {
		vector.DrawFilledRect(screen, float32(contact.X), float32(contact.Y), float32(contact.W), float32(contact.H), sectionColor, false)
	}

	for _, b := range page.DrawOrder() {
		bounds := b.Bounds()
		if !visible(bounds, vp) {
			continue
		}
		r.RenderBalloon(screen, b)
		if debug.ShowBounds {
			slot := b.Slot().Translate(0, -page.Scroller().Offset())
			vector.StrokeRect(screen, float32(slot.X), float32(slot.Y), float32(slot.W), float32(slot.H), 1, boundsColor, false)
		}
	}
}

// RenderBalloon draws one balloon: string first, then the body over it
func (r *Renderer) RenderBalloon(screen *ebiten.Image, b *scene.Balloon) {
	r.points = stringPoints(r.points[:0], b)
	for i := 1; i < len(r.points); i++ {
		p0, p1 := r.points[i-1], r.points[i]
		vector.StrokeLine(screen, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y), stringWidth, stringColor, true)
	}

	size := b.Size()
	w, h := int(math.Ceil(size.X)), int(math.Ceil(size.Y))
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: bodyGeoM(b)}
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(r.sprites.Image(b.Config.Fill(), w, h), op)
}

// bodyGeoM maps the sprite onto the balloon's bounds, rotating about the
// centre
func bodyGeoM(b *scene.Balloon) ebiten.GeoM {
	size := b.Size()
	t := b.Transform()
	c := b.Bounds().Center()

	var g ebiten.GeoM
	g.Translate(-size.X/2, -size.Y/2)
	if t.Scale > 0 {
		g.Scale(t.Scale, t.Scale)
	}
	g.Rotate(t.Rotate * math.Pi / 180)
	g.Translate(c.X, c.Y)
	return g
}

// knot returns where the string meets the body in viewport space
func knot(b *scene.Balloon) geom.Vec2 {
	bounds := b.Bounds()
	c := bounds.Center()
	rad := b.Transform().Rotate * math.Pi / 180
	// offset from centre to the bottom of the body, rotated with it
	dy := bounds.H / 2
	return geom.Vec2{X: c.X - math.Sin(rad)*dy, Y: c.Y + math.Cos(rad)*dy}
}

// stringPoints samples the string as a quadratic curve from the knot. The
// tip swings with the wave; the bend bows the middle.
func stringPoints(dst []geom.Vec2, b *scene.Balloon) []geom.Vec2 {
	length := b.Config.StringLen()
	if length <= 0 {
		return dst
	}
	p0 := knot(b)
	lean := b.String.Lean * math.Pi / 180
	p2 := geom.Vec2{
		X: p0.X + math.Sin(lean)*length + b.String.Offset(),
		Y: p0.Y + math.Cos(lean)*length,
	}
	ctrl := geom.Vec2{X: (p0.X+p2.X)/2 + b.Config.StringCurve(), Y: (p0.Y + p2.Y) / 2}

	for i := 0; i <= stringSegments; i++ {
		t := float64(i) / stringSegments
		u := 1 - t
		dst = append(dst, geom.Vec2{
			X: u*u*p0.X + 2*u*t*ctrl.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*ctrl.Y + t*t*p2.Y,
		})
	}
	return dst
}

// visible reports whether r overlaps the viewport plus the cull margin
func visible(r geom.Rect, vp geom.Vec2) bool {
	return r.Right() > -cullMargin && r.X < vp.X+cullMargin &&
		r.Bottom() > -cullMargin && r.Y < vp.Y+cullMargin
}
