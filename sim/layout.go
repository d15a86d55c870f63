package sim

import "balloonsim/geom"

// Tracker recovers each body's rest frame from the rendered layout
type Tracker struct {
	// Measured counts bodies updated by the last capture
	Measured int
}

// NewTracker creates a layout tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Capture re-measures every body against the container box. The current
// offset is subtracted so a resize never makes a balloon jump, and the
// collision radius follows the rendered size. Position and velocity are left
// untouched. Bodies without a laid-out element are skipped.
func (t *Tracker) Capture(container geom.Rect, bodies []*Body) int {
	t.Measured = 0
	if container.Empty() {
		return 0
	}
	origin := geom.Vec2{X: container.X, Y: container.Y}
	for _, b := range bodies {
		if b.Element == nil {
			continue
		}
		box := b.Element.Bounds()
		if box.Empty() {
			continue
		}
		b.BaseCenter = box.Center().Sub(origin).Sub(b.Position)
		b.Radius = radiusFor(box.W, box.H)
		t.Measured++
	}
	return t.Measured
}
