package scene

import (
	"balloonsim/ambient"
	"balloonsim/anim"
	"balloonsim/choreo"
	"balloonsim/geom"
	"balloonsim/sim"
)

// Physics channels written through sim.Element
const (
	PropDriftX anim.Property = "drift_x"
	PropDriftY anim.Property = "drift_y"
	PropRotate anim.Property = "rotate"
)

// Transform is the composed on-screen transform of a balloon. Every writer
// owns its own channels; Transform sums them.
type Transform struct {
	X, Y   float64 // px from the slot origin
	Rotate float64 // degrees
	Scale  float64
	Layer  int
}

// Balloon is the render handle for one balloon. It satisfies sim.Element,
// choreo.Element and ambient.PointerTarget.
type Balloon struct {
	Config sim.BalloonConfig
	String *ambient.StringWave

	id     string
	slot   geom.Rect
	scroll float64
	props  map[anim.Property]float64
}

// NewBalloon creates a handle for cfg. The id falls back to a generated one.
func NewBalloon(cfg sim.BalloonConfig, reducedMotion bool) *Balloon {
	cfg = cfg.WithID()
	return &Balloon{
		Config: cfg,
		String: ambient.NewStringWave(cfg, reducedMotion),
		id:     cfg.ID,
		props:  make(map[anim.Property]float64, 16),
	}
}

// ID implements choreo.Element
func (b *Balloon) ID() string {
	return b.id
}

// Size is the unscaled balloon box
func (b *Balloon) Size() geom.Vec2 {
	return geom.Vec2{X: b.Config.W(), Y: b.Config.H()}
}

// Place sets the slot assigned by layout, in page coordinates
func (b *Balloon) Place(slot geom.Rect) {
	b.slot = slot
}

// Slot returns the layout slot in page coordinates
func (b *Balloon) Slot() geom.Rect {
	return b.slot
}

// SetScroll records the page scroll offset so Bounds reports viewport space
func (b *Balloon) SetScroll(offset float64) {
	b.scroll = offset
}

// Bounds returns the transformed box in viewport coordinates
func (b *Balloon) Bounds() geom.Rect {
	t := b.Transform()
	r := b.slot.Translate(t.X, t.Y-b.scroll)
	if t.Scale != 1 && t.Scale > 0 {
		c := r.Center()
		r.W *= t.Scale
		r.H *= t.Scale
		r.X = c.X - r.W/2
		r.Y = c.Y - r.H/2
	}
	return r
}

// SetOffset implements sim.Element
func (b *Balloon) SetOffset(x, y float64) {
	b.props[PropDriftX] = x
	b.props[PropDriftY] = y
}

// SetRotation implements sim.Element
func (b *Balloon) SetRotation(deg float64) {
	b.props[PropRotate] = deg
}

// Get implements anim.Target
func (b *Balloon) Get(p anim.Property) float64 {
	if v, ok := b.props[p]; ok {
		return v
	}
	switch p {
	case choreo.PropFocusScale:
		return 1
	case choreo.PropLayer:
		return float64(b.Config.Layer())
	}
	return 0
}

// Set implements anim.Target
func (b *Balloon) Set(p anim.Property, v float64) {
	b.props[p] = v
}

// Transform composes the translate offset with every animated channel
func (b *Balloon) Transform() Transform {
	tx, ty := b.Config.Offset()
	return Transform{
		X: tx + b.props[PropDriftX] + b.props[choreo.PropFocusX] + b.props[ambient.PropFloatX] +
			b.props[choreo.PropPeerSlideX] + b.props[ambient.PropPointerX],
		Y: ty + b.props[PropDriftY] + b.props[choreo.PropFocusY] + b.props[ambient.PropFloatY] +
			b.props[choreo.PropPeerBobY] + b.props[ambient.PropPointerY],
		Rotate: b.props[PropRotate] + b.props[ambient.PropTilt] + b.props[choreo.PropPeerTilt] +
			b.props[ambient.PropPointerTilt],
		Scale: b.Get(choreo.PropFocusScale),
		Layer: int(b.Get(choreo.PropLayer)),
	}
}

// Reset clears every animated channel
func (b *Balloon) Reset() {
	clear(b.props)
}
