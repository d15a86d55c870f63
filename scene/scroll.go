package scene

import (
	"math"

	"balloonsim/geom"
)

// DefaultScrollSmoothing is how quickly the page catches up with wheel input, per second
const DefaultScrollSmoothing = 12.0

const scrollSnap = 0.1 // px

// Scroller is the page scroll position. Input moves a target; the offset
// eases toward it every frame and the per-frame displacement gives the
// velocity reported to scroll listeners.
type Scroller struct {
	Smoothing float64

	offset   float64
	target   float64
	max      float64
	velocity float64
}

// NewScroller creates a scroller at the top of the page
func NewScroller() *Scroller {
	return &Scroller{Smoothing: DefaultScrollSmoothing}
}

// SetMax sets the scrollable extent and clamps the position into it
func (s *Scroller) SetMax(m float64) {
	s.max = max(m, 0)
	s.target = geom.Clamp(s.target, 0, s.max)
	s.offset = geom.Clamp(s.offset, 0, s.max)
}

// ScrollBy moves the target by delta px
func (s *Scroller) ScrollBy(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	s.target = geom.Clamp(s.target+delta, 0, s.max)
}

// ScrollTo jumps the target to offset
func (s *Scroller) ScrollTo(offset float64) {
	s.target = geom.Clamp(offset, 0, s.max)
}

// Update eases the offset toward the target and returns the velocity in px/s
func (s *Scroller) Update(dt float64) float64 {
	if dt <= 0 {
		s.velocity = 0
		return 0
	}
	prev := s.offset
	k := 1 - math.Exp(-s.Smoothing*dt)
	s.offset += (s.target - s.offset) * k
	if math.Abs(s.target-s.offset) < scrollSnap {
		s.offset = s.target
	}
	s.velocity = (s.offset - prev) / dt
	return s.velocity
}

// Offset returns the current scroll position
func (s *Scroller) Offset() float64 { return s.offset }

// Max returns the scrollable extent
func (s *Scroller) Max() float64 { return s.max }

// Velocity returns the velocity computed by the last Update
func (s *Scroller) Velocity() float64 { return s.velocity }
