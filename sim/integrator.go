package sim

import (
	"math"

	"balloonsim/geom"
)

// Params holds the force constants of one integration tick
type Params struct {
	Damping      float64 `mapstructure:"damping" yaml:"damping"`
	Spring       float64 `mapstructure:"spring" yaml:"spring"`
	Buoyancy     float64 `mapstructure:"buoyancy" yaml:"buoyancy"`
	WobbleScaleX float64 `mapstructure:"wobble_scale_x" yaml:"wobble_scale_x"`
	WobbleScaleY float64 `mapstructure:"wobble_scale_y" yaml:"wobble_scale_y"`

	// FloatBias lifts the vertical rest target by this fraction of the float limit
	FloatBias float64 `mapstructure:"float_bias" yaml:"float_bias"`

	// VelocityCap is the per-axis speed limit as a fraction of the axis limit
	VelocityCap      float64 `mapstructure:"velocity_cap" yaml:"velocity_cap"`
	VelocityCapFloor float64 `mapstructure:"velocity_cap_floor" yaml:"velocity_cap_floor"`

	RestitutionX float64 `mapstructure:"restitution_x" yaml:"restitution_x"`
	RestitutionY float64 `mapstructure:"restitution_y" yaml:"restitution_y"`

	// CollisionRestitution is the bounce between two bodies
	CollisionRestitution float64 `mapstructure:"collision_restitution" yaml:"collision_restitution"`

	// CollisionSlop is added to every overlap so resolved pairs end up just apart
	CollisionSlop float64 `mapstructure:"collision_slop" yaml:"collision_slop"`
}

// DefaultParams returns the tuned float feel
func DefaultParams() Params {
	return Params{
		Damping:              0.95,
		Spring:               0.006,
		Buoyancy:             0.12,
		WobbleScaleX:         0.0016,
		WobbleScaleY:         0.0012,
		FloatBias:            0.2,
		VelocityCap:          0.12,
		VelocityCapFloor:     0.4,
		RestitutionX:         0.55,
		RestitutionY:         0.5,
		CollisionRestitution: 0.65,
		CollisionSlop:        0.5,
	}
}

// Integrator advances bodies one tick at a time
type Integrator struct {
	Params Params
}

// NewIntegrator creates an integrator with the given force constants
func NewIntegrator(p Params) *Integrator {
	return &Integrator{Params: p}
}

// Step applies wobble, spring, buoyancy, damping, the speed cap, the position
// update and boundary reflection to every body, in that order.
func (in *Integrator) Step(bodies []*Body) {
	for _, b := range bodies {
		in.StepBody(b)
	}
}

// StepBody advances a single body
func (in *Integrator) StepBody(b *Body) {
	p := in.Params

	b.Wobble.TimeX += b.Wobble.SpeedX
	b.Wobble.TimeY += b.Wobble.SpeedY
	wobbleX := math.Sin(b.Wobble.TimeX) * b.Wobble.MagnitudeX * p.WobbleScaleX
	wobbleY := math.Sin(b.Wobble.TimeY) * b.Wobble.MagnitudeY * p.WobbleScaleY

	targetY := -b.Limits.Y * p.FloatBias
	b.Velocity.X += -b.Position.X*p.Spring + wobbleX
	b.Velocity.Y += (-b.Position.Y+targetY)*p.Spring + p.Buoyancy*b.InvMass() + wobbleY

	b.Velocity = b.Velocity.Scale(p.Damping)

	capX := max(b.Limits.X*p.VelocityCap, p.VelocityCapFloor)
	capY := max(b.Limits.Y*p.VelocityCap, p.VelocityCapFloor)
	b.Velocity.X = geom.Clamp(b.Velocity.X, -capX, capX)
	b.Velocity.Y = geom.Clamp(b.Velocity.Y, -capY, capY)

	b.Position = b.Position.Add(b.Velocity)

	in.EnforceBounds(b)
}

// EnforceBounds clamps the body into its limit box and bounces the velocity
// of any axis that hit a wall. An axis with a non-positive limit is left alone.
func (in *Integrator) EnforceBounds(b *Body) {
	enforceBounds(b, in.Params.RestitutionX, in.Params.RestitutionY)
}

func enforceBounds(b *Body, restX, restY float64) {
	if lim := b.Limits.X; lim > 0 {
		if b.Position.X > lim {
			b.Position.X = lim
			b.Velocity.X *= -restX
		} else if b.Position.X < -lim {
			b.Position.X = -lim
			b.Velocity.X *= -restX
		}
	}
	if lim := b.Limits.Y; lim > 0 {
		if b.Position.Y > lim {
			b.Position.Y = lim
			b.Velocity.Y *= -restY
		} else if b.Position.Y < -lim {
			b.Position.Y = -lim
			b.Velocity.Y *= -restY
		}
	}
}
