package sim

import (
	"math"
	"math/rand"

	"balloonsim/geom"
)

// Element is the render handle a body writes its output to.
// The host owns it; a body never creates or destroys one.
type Element interface {
	// Bounds returns the on-screen box, offsets included
	Bounds() geom.Rect

	// SetOffset sets the drift offset from the rest position in pixels
	SetOffset(x, y float64)

	// SetRotation sets the tilt in degrees
	SetRotation(deg float64)
}

// Wobble is the per-axis idle sway forcing
type Wobble struct {
	TimeX, TimeY           float64
	SpeedX, SpeedY         float64
	MagnitudeX, MagnitudeY float64
}

// Body is one simulated balloon
type Body struct {
	// ID is the stable identity of the balloon
	ID string

	// Element receives position and rotation output
	Element Element

	// ZIndex is the depth layer; only bodies on the same layer collide
	ZIndex int

	// Limits is the maximum displacement from rest on each axis
	Limits geom.Vec2

	// Position is the current offset from BaseCenter
	Position geom.Vec2

	// Velocity in pixels per tick
	Velocity geom.Vec2

	// BaseCenter is the rest-frame center in container space
	BaseCenter geom.Vec2

	// Radius is the collision radius in pixels
	Radius float64

	// Mass scales impulses and separation
	Mass float64

	// RotationRange is the maximum tilt in degrees
	RotationRange float64

	Wobble Wobble
}

// NewBody creates a body at rest for cfg.
// rng seeds the wobble phases and speeds; nil uses the global source.
func NewBody(cfg BalloonConfig, el Element, rng *rand.Rand) *Body {
	limitX := cfg.DriftLimit()
	limitY := cfg.FloatLimit()

	return &Body{
		ID:            cfg.WithID().ID,
		Element:       el,
		ZIndex:        cfg.Layer(),
		Limits:        geom.Vec2{X: limitX, Y: limitY},
		Radius:        cfg.Radius(),
		Mass:          cfg.Mass(),
		RotationRange: cfg.Tilt(),
		Wobble: Wobble{
			TimeX:      geom.Random(rng, 0, 2*math.Pi, 0.001),
			TimeY:      geom.Random(rng, 0, 2*math.Pi, 0.001),
			SpeedX:     geom.Random(rng, 0.003, 0.007, 0),
			SpeedY:     geom.Random(rng, 0.0025, 0.006, 0),
			MagnitudeX: min(limitX*0.18, 8),
			MagnitudeY: min(limitY*0.2, 12),
		},
	}
}

// InvMass returns 1/mass, treating a non-positive mass as the floor
func (b *Body) InvMass() float64 {
	return 1 / b.mass()
}

func (b *Body) mass() float64 {
	if b.Mass < minMass || math.IsNaN(b.Mass) {
		return minMass
	}
	return b.Mass
}

// Center returns the absolute center in container space
func (b *Body) Center() geom.Vec2 {
	return b.BaseCenter.Add(b.Position)
}

// DistanceTo returns the distance between the absolute centers
func (b *Body) DistanceTo(other *Body) float64 {
	return other.Center().Sub(b.Center()).Len()
}

// IsColliding reports whether the two collision circles overlap
func (b *Body) IsColliding(other *Body) bool {
	return b.DistanceTo(other) < b.Radius+other.Radius
}

// Rotation returns the tilt derived from horizontal velocity
func (b *Body) Rotation() float64 {
	rr := b.RotationRange
	return geom.Clamp(b.Velocity.X/max(b.Limits.X, 1)*rr*1.5, -rr, rr)
}

// Commit writes position and rotation to the element
func (b *Body) Commit() {
	if b.Element == nil {
		return
	}
	b.Element.SetOffset(b.Position.X, b.Position.Y)
	b.Element.SetRotation(b.Rotation())
}

// Reset puts the body back at rest without touching its layout
func (b *Body) Reset() {
	b.Position = geom.Vec2{}
	b.Velocity = geom.Vec2{}
}
