package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"balloonsim/geom"
)

func TestIntegrator_StepForcesInOrder(t *testing.T) {
	p := DefaultParams()
	in := NewIntegrator(p)
	b := &Body{
		Limits:   geom.Vec2{X: 30, Y: 90},
		Mass:     1.5,
		Position: geom.Vec2{X: 10, Y: -5},
		Velocity: geom.Vec2{X: 0.2, Y: -0.1},
		Wobble: Wobble{
			TimeX: 1, TimeY: 2,
			SpeedX: 0.005, SpeedY: 0.004,
			MagnitudeX: 5.4, MagnitudeY: 12,
		},
	}

	wx := math.Sin(1.005) * 5.4 * 0.0016
	wy := math.Sin(2.004) * 12 * 0.0012
	vx := (0.2 + -10*0.006 + wx) * 0.95
	vy := (-0.1 + (5+-18)*0.006 + 0.12/1.5 + wy) * 0.95

	in.StepBody(b)

	require.InDelta(t, 1.005, b.Wobble.TimeX, 1e-12)
	require.InDelta(t, 2.004, b.Wobble.TimeY, 1e-12)
	require.InDelta(t, vx, b.Velocity.X, 1e-12)
	require.InDelta(t, vy, b.Velocity.Y, 1e-12)
	require.InDelta(t, 10+vx, b.Position.X, 1e-12)
	require.InDelta(t, -5+vy, b.Position.Y, 1e-12)
}

func TestIntegrator_VelocityCap(t *testing.T) {
	in := NewIntegrator(DefaultParams())
	b := &Body{
		Limits:   geom.Vec2{X: 30, Y: 2},
		Mass:     1,
		Velocity: geom.Vec2{X: 50, Y: -50},
	}
	in.StepBody(b)

	require.InDelta(t, 30*0.12, b.Velocity.X, 1e-12)
	require.InDelta(t, -0.4, b.Velocity.Y, 1e-12, "small limits fall back to the cap floor")
}

func TestIntegrator_EnforceBounds(t *testing.T) {
	in := NewIntegrator(DefaultParams())

	tests := []struct {
		name    string
		pos     geom.Vec2
		vel     geom.Vec2
		limits  geom.Vec2
		wantPos geom.Vec2
		wantVel geom.Vec2
	}{
		{
			name:    "inside",
			pos:     geom.Vec2{X: 5, Y: -5},
			vel:     geom.Vec2{X: 1, Y: 1},
			limits:  geom.Vec2{X: 10, Y: 10},
			wantPos: geom.Vec2{X: 5, Y: -5},
			wantVel: geom.Vec2{X: 1, Y: 1},
		},
		{
			name:    "past right and top",
			pos:     geom.Vec2{X: 12, Y: -14},
			vel:     geom.Vec2{X: 2, Y: -4},
			limits:  geom.Vec2{X: 10, Y: 10},
			wantPos: geom.Vec2{X: 10, Y: -10},
			wantVel: geom.Vec2{X: -1.1, Y: 2},
		},
		{
			name:    "past left and bottom",
			pos:     geom.Vec2{X: -11, Y: 11},
			vel:     geom.Vec2{X: -2, Y: 2},
			limits:  geom.Vec2{X: 10, Y: 10},
			wantPos: geom.Vec2{X: -10, Y: 10},
			wantVel: geom.Vec2{X: 1.1, Y: -1},
		},
		{
			name:    "zero limit axis untouched",
			pos:     geom.Vec2{X: 50, Y: 0},
			vel:     geom.Vec2{X: 3, Y: 0},
			limits:  geom.Vec2{X: 0, Y: 10},
			wantPos: geom.Vec2{X: 50, Y: 0},
			wantVel: geom.Vec2{X: 3, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{Position: tt.pos, Velocity: tt.vel, Limits: tt.limits}
			in.EnforceBounds(b)
			require.InDelta(t, tt.wantPos.X, b.Position.X, 1e-12)
			require.InDelta(t, tt.wantPos.Y, b.Position.Y, 1e-12)
			require.InDelta(t, tt.wantVel.X, b.Velocity.X, 1e-12)
			require.InDelta(t, tt.wantVel.Y, b.Velocity.Y, 1e-12)
		})
	}
}

// drawBody builds a body from a random config with a random start state
func drawBody(rt *rapid.T, label string) *Body {
	cfg := BalloonConfig{
		Width:           Float(rapid.Float64Range(30, 220).Draw(rt, label+".w")),
		Height:          Float(rapid.Float64Range(30, 260).Draw(rt, label+".h")),
		ZIndex:          Int(rapid.IntRange(0, 3).Draw(rt, label+".z")),
		HorizontalDrift: Float(rapid.Float64Range(0, 120).Draw(rt, label+".drift")),
		FloatRange:      Float(rapid.Float64Range(0, 160).Draw(rt, label+".float")),
	}
	b := NewBody(cfg, nil, seeded())
	b.BaseCenter = geom.Vec2{
		X: rapid.Float64Range(0, 600).Draw(rt, label+".cx"),
		Y: rapid.Float64Range(0, 300).Draw(rt, label+".cy"),
	}
	b.Position = geom.Vec2{
		X: rapid.Float64Range(-b.Limits.X, b.Limits.X).Draw(rt, label+".px"),
		Y: rapid.Float64Range(-b.Limits.Y, b.Limits.Y).Draw(rt, label+".py"),
	}
	b.Velocity = geom.Vec2{
		X: rapid.Float64Range(-20, 20).Draw(rt, label+".vx"),
		Y: rapid.Float64Range(-20, 20).Draw(rt, label+".vy"),
	}
	return b
}

func TestProperty_BodiesStayWithinLimits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "bodies")
		bodies := make([]*Body, n)
		for i := range bodies {
			bodies[i] = drawBody(rt, "b")
		}
		in := NewIntegrator(DefaultParams())
		res := NewResolver(DefaultParams())
		coupler := NewCoupler(DefaultScrollParams())

		ticks := rapid.IntRange(1, 300).Draw(rt, "ticks")
		for tick := 0; tick < ticks; tick++ {
			if tick%25 == 0 {
				coupler.Apply(bodies, rapid.Float64Range(-8000, 8000).Draw(rt, "scroll"))
			}
			in.Step(bodies)
			res.Resolve(bodies)

			for i, b := range bodies {
				require.LessOrEqual(t, math.Abs(b.Position.X), b.Limits.X, "body %d x after tick %d", i, tick)
				require.LessOrEqual(t, math.Abs(b.Position.Y), b.Limits.Y, "body %d y after tick %d", i, tick)
			}
		}
	})
}

func TestProperty_DampingSettlesWithoutImpulses(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := BalloonConfig{
			Width:           Float(rapid.Float64Range(110, 200).Draw(rt, "w")),
			Height:          Float(rapid.Float64Range(110, 260).Draw(rt, "h")),
			HorizontalDrift: Float(rapid.Float64Range(20, 120).Draw(rt, "drift")),
			FloatRange:      Float(rapid.Float64Range(60, 150).Draw(rt, "float")),
		}
		b := NewBody(cfg, nil, seeded())
		b.Wobble.MagnitudeX = 0
		b.Wobble.MagnitudeY = 0
		b.Velocity = geom.Vec2{
			X: rapid.Float64Range(-5, 5).Draw(rt, "vx"),
			Y: rapid.Float64Range(-5, 5).Draw(rt, "vy"),
		}
		in := NewIntegrator(DefaultParams())

		// The spring is slightly underdamped, so speed decays along an
		// envelope: each window's peak is below the previous one until it
		// reaches rounding noise.
		const (
			window  = 200
			settled = 1e-9
		)
		prevPeak := math.Inf(1)
		for w := 0; w < 10; w++ {
			peak := 0.0
			for i := 0; i < window; i++ {
				in.StepBody(b)
				peak = max(peak, b.Velocity.Len())
			}
			if prevPeak < settled {
				require.Less(t, peak, settled, "window %d", w)
				continue
			}
			require.LessOrEqual(t, peak, prevPeak, "window %d", w)
			prevPeak = peak
		}
		require.Less(t, b.Velocity.Len(), 1e-3)
	})
}
