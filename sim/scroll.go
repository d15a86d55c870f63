package sim

import (
	"math"

	"balloonsim/geom"
)

// ScrollParams tunes how scroll velocity turns into body impulses
type ScrollParams struct {
	// MaxVelocity clamps the incoming scroll velocity in px/s
	MaxVelocity float64 `mapstructure:"max_velocity" yaml:"max_velocity"`

	// NoiseFloor ignores velocities smaller than this
	NoiseFloor float64 `mapstructure:"noise_floor" yaml:"noise_floor"`

	VerticalGain   float64 `mapstructure:"vertical_gain" yaml:"vertical_gain"`
	HorizontalGain float64 `mapstructure:"horizontal_gain" yaml:"horizontal_gain"`

	// VerticalReference and HorizontalReference are the limits at which a
	// body receives the unscaled impulse
	VerticalReference   float64 `mapstructure:"vertical_reference" yaml:"vertical_reference"`
	HorizontalReference float64 `mapstructure:"horizontal_reference" yaml:"horizontal_reference"`
}

// DefaultScrollParams returns the tuned scroll response
func DefaultScrollParams() ScrollParams {
	return ScrollParams{
		MaxVelocity:         3000,
		NoiseFloor:          5,
		VerticalGain:        0.006,
		HorizontalGain:      0.0012,
		VerticalReference:   120,
		HorizontalReference: 60,
	}
}

// Coupler converts scroll velocity into one-shot velocity nudges
type Coupler struct {
	Params ScrollParams
}

// NewCoupler creates a coupler
func NewCoupler(p ScrollParams) *Coupler {
	return &Coupler{Params: p}
}

// Impulses returns the vertical and horizontal impulse for a scroll velocity
// and whether it clears the noise floor. Scrolling down (positive) lifts.
func (c *Coupler) Impulses(velocity float64) (vertical, horizontal float64, ok bool) {
	if math.IsNaN(velocity) {
		return 0, 0, false
	}
	v := geom.Clamp(velocity, -c.Params.MaxVelocity, c.Params.MaxVelocity)
	if math.Abs(v) < c.Params.NoiseFloor {
		return 0, 0, false
	}
	return -v * c.Params.VerticalGain, v * c.Params.HorizontalGain, true
}

// Parity is +1 for even body indices and -1 for odd ones
func Parity(index int) float64 {
	if index%2 == 0 {
		return 1
	}
	return -1
}

// Apply nudges every body and reports whether anything was applied.
// Horizontal impulses alternate sign by index so neighbours swing apart.
func (c *Coupler) Apply(bodies []*Body, velocity float64) bool {
	if len(bodies) == 0 {
		return false
	}
	vertical, horizontal, ok := c.Impulses(velocity)
	if !ok {
		return false
	}
	d := DefaultScrollParams()
	vref := reference(c.Params.VerticalReference, d.VerticalReference)
	href := reference(c.Params.HorizontalReference, d.HorizontalReference)
	for i, b := range bodies {
		inv := b.InvMass()
		b.Velocity.Y += vertical * inv * (b.Limits.Y / vref)
		b.Velocity.X += horizontal * Parity(i) * inv * (b.Limits.X / href)
	}
	return true
}

// reference falls back to def when r cannot scale an impulse
func reference(r, def float64) float64 {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return def
	}
	return r
}
