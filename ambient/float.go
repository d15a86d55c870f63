// Package ambient holds the decorative motion that runs beside the physics:
// idle float loops, pointer parallax and string sway.
package ambient

import (
	"balloonsim/anim"
)

// Float channels written by the idle loop
const (
	PropFloatX anim.Property = "float_x"
	PropFloatY anim.Property = "float_y"
	PropTilt   anim.Property = "tilt"
)

// FloatSpec is the idle loop of one balloon in a row
type FloatSpec struct {
	Duration        float64
	Delay           float64
	VerticalDrift   float64
	HorizontalDrift float64
	Tilt            float64

	// Sign is -1 for even indices and +1 for odd ones; the loop starts at
	// Sign*drift and swings to the opposite side
	Sign float64
}

// FloatFor staggers the loop by index so neighbours never move in step
func FloatFor(index int) FloatSpec {
	i := float64(index)
	sign := -1.0
	if index%2 != 0 {
		sign = 1
	}
	return FloatSpec{
		Duration:        5 + i*0.8,
		Delay:           i * 0.25,
		VerticalDrift:   6 + i*1.8,
		HorizontalDrift: 3 + i,
		Tilt:            1.4,
		Sign:            sign,
	}
}

// Tween builds the endless yoyo loop for target
func (s FloatSpec) Tween(target anim.Target) *anim.Tween {
	return anim.NewTween(target,
		anim.Props{
			PropFloatY: s.VerticalDrift,
			PropFloatX: -s.Sign * s.HorizontalDrift,
			PropTilt:   -s.Sign * s.Tilt,
		},
		anim.TweenOptions{
			Duration: s.Duration,
			Delay:    s.Delay,
			Ease:     anim.SineInOut,
			Repeat:   -1,
			Yoyo:     true,
			From: anim.Props{
				PropFloatY: -s.VerticalDrift,
				PropFloatX: s.Sign * s.HorizontalDrift,
				PropTilt:   s.Sign * s.Tilt,
			},
		})
}

// Floats owns the idle loops of a row of balloons
type Floats struct {
	tweens []*anim.Tween
}

// Start replaces any running loops with one per target, played on r
func (f *Floats) Start(r *anim.Runner, targets []anim.Target) {
	f.Stop()
	for i, t := range targets {
		tw := FloatFor(i).Tween(t)
		r.Play(tw)
		f.tweens = append(f.tweens, tw)
	}
}

// Stop kills every loop. Safe to call when nothing is running.
func (f *Floats) Stop() {
	for _, tw := range f.tweens {
		tw.Kill()
	}
	f.tweens = f.tweens[:0]
}

// Len returns the number of running loops
func (f *Floats) Len() int {
	return len(f.tweens)
}
