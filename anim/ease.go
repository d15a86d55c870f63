package anim

import "github.com/fogleman/ease"

// Ease maps linear progress in [0, 1] to eased progress
type Ease func(t float64) float64

var (
	// Linear is the identity ease
	Linear Ease = ease.Linear

	// Power1InOut is a quadratic ease-in-out
	Power1InOut Ease = ease.InOutQuad

	// Power2Out is a cubic ease-out
	Power2Out Ease = ease.OutCubic

	// SineOut eases out along a quarter sine
	SineOut Ease = ease.OutSine

	// SineInOut eases in and out along a half cosine
	SineInOut Ease = ease.InOutSine
)

// ElasticOut returns an ease that overshoots and rings into place with the
// given period. The endpoints are pinned so a finished tween lands exactly.
func ElasticOut(period float64) Ease {
	if period <= 0 {
		period = 0.3
	}
	f := ease.OutElasticFunction(period)
	return func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		if t <= 0 {
			return 0
		}
		return f(t)
	}
}
