package sim

import "balloonsim/geom"

// Host is the surface a cluster is mounted in. Every On* method returns a
// func that removes the subscription; calling it twice must be harmless.
type Host interface {
	// Bounds returns the container box in the same space as element bounds
	Bounds() geom.Rect

	// OnResize fires when the container changes size
	OnResize(fn func()) (unsubscribe func())

	// OnReflow fires when the surrounding layout is recomputed
	OnReflow(fn func()) (unsubscribe func())

	// OnScroll delivers the scroll velocity in px/s while the cluster is in view
	OnScroll(fn func(velocity float64)) (unsubscribe func())
}
