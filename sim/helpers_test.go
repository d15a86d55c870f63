package sim

import (
	"math/rand"

	"balloonsim/geom"
	"balloonsim/signal"
)

// fakeElement is a render handle whose box follows the written offset
type fakeElement struct {
	rest     geom.Rect
	offX     float64
	offY     float64
	rotation float64
	writes   int
}

func (e *fakeElement) Bounds() geom.Rect { return e.rest.Translate(e.offX, e.offY) }

func (e *fakeElement) SetOffset(x, y float64) {
	e.offX, e.offY = x, y
	e.writes++
}

func (e *fakeElement) SetRotation(deg float64) { e.rotation = deg }

type fakeHost struct {
	bounds geom.Rect
	resize *signal.Signal[struct{}]
	reflow *signal.Signal[struct{}]
	scroll *signal.Signal[float64]
}

func newFakeHost(bounds geom.Rect) *fakeHost {
	return &fakeHost{
		bounds: bounds,
		resize: signal.New[struct{}](),
		reflow: signal.New[struct{}](),
		scroll: signal.New[float64](),
	}
}

func (h *fakeHost) Bounds() geom.Rect { return h.bounds }

func (h *fakeHost) OnResize(fn func()) func() {
	return h.resize.Subscribe(func(struct{}) { fn() })
}

func (h *fakeHost) OnReflow(fn func()) func() {
	return h.reflow.Subscribe(func(struct{}) { fn() })
}

func (h *fakeHost) OnScroll(fn func(float64)) func() {
	return h.scroll.Subscribe(fn)
}

func (h *fakeHost) subscribers() int {
	return h.resize.Len() + h.reflow.Len() + h.scroll.Len()
}

// row lays out n default balloons side by side with a gap
func row(n int, gap float64) []*fakeElement {
	els := make([]*fakeElement, n)
	for i := range els {
		els[i] = &fakeElement{rest: geom.Rect{
			X: float64(i) * (DefaultWidth + gap),
			Y: 100,
			W: DefaultWidth,
			H: DefaultHeight,
		}}
	}
	return els
}

func asElements(els []*fakeElement) []Element {
	out := make([]Element, len(els))
	for i, e := range els {
		out[i] = e
	}
	return out
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// bodyAt builds a still body with explicit geometry
func bodyAt(z int, center geom.Vec2, radius, mass float64, limits geom.Vec2) *Body {
	return &Body{
		ZIndex:        z,
		BaseCenter:    center,
		Radius:        radius,
		Mass:          mass,
		Limits:        limits,
		RotationRange: DefaultRotationRange,
	}
}
