// Package geom holds the small 2D helpers shared by the simulation and the
// choreography: vectors, boxes, clamping and snapped random draws.
package geom

import (
	"math"
	"math/rand"
)

// Vec2 represents a 2D vector
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the euclidean length of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Clamp limits value to the closed range [lo, hi].
// When lo > hi the bounds are swapped.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Random returns a uniform value in [lo, hi).
// A positive snap rounds the result to the nearest multiple of snap.
func Random(rng *rand.Rand, lo, hi, snap float64) float64 {
	var r float64
	if rng != nil {
		r = rng.Float64()
	} else {
		r = rand.Float64()
	}
	v := lo + (hi-lo)*r
	if snap > 0 {
		v = math.Round(v/snap) * snap
	}
	return v
}
