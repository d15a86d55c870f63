package scene

import (
	"balloonsim/geom"
	"balloonsim/signal"
)

// ScrollEndOffset extends the scroll window past the top of the viewport:
// a section keeps receiving scroll until its bottom is this far above it.
const ScrollEndOffset = 80.0

// Section is a page region that hosts a cluster. It implements sim.Host.
type Section struct {
	Name string

	rect      geom.Rect // page coordinates
	scroll    float64
	viewportH float64

	resize    *signal.Signal[struct{}]
	reflow    *signal.Signal[struct{}]
	scrollSig *signal.Signal[float64]
}

// NewSection creates a section occupying rect in page coordinates
func NewSection(name string, rect geom.Rect) *Section {
	return &Section{
		Name:      name,
		rect:      rect,
		resize:    signal.New[struct{}](),
		reflow:    signal.New[struct{}](),
		scrollSig: signal.New[float64](),
	}
}

// Bounds implements sim.Host. The box is in viewport coordinates.
func (s *Section) Bounds() geom.Rect {
	return s.rect.Translate(0, -s.scroll)
}

// Rect returns the section box in page coordinates
func (s *Section) Rect() geom.Rect {
	return s.rect
}

// OnResize implements sim.Host
func (s *Section) OnResize(fn func()) func() {
	return s.resize.Subscribe(func(struct{}) { fn() })
}

// OnReflow implements sim.Host
func (s *Section) OnReflow(fn func()) func() {
	return s.reflow.Subscribe(func(struct{}) { fn() })
}

// OnScroll implements sim.Host
func (s *Section) OnScroll(fn func(float64)) func() {
	return s.scrollSig.Subscribe(fn)
}

// SetViewport records the scroll offset and viewport height used for Bounds and InView
func (s *Section) SetViewport(scroll, height float64) {
	s.scroll = scroll
	s.viewportH = height
}

// InView reports whether the section is inside the scroll window: its top
// has passed the viewport bottom and its bottom has not yet gone
// ScrollEndOffset above the viewport top.
func (s *Section) InView() bool {
	top := s.rect.Y - s.scroll
	return top < s.viewportH && top+s.rect.H > -ScrollEndOffset
}

// Resize moves the section and notifies resize listeners when its size changed
func (s *Section) Resize(rect geom.Rect) {
	changed := rect.W != s.rect.W || rect.H != s.rect.H
	s.rect = rect
	if changed {
		s.resize.Emit(struct{}{})
	}
}

// Reflow notifies reflow listeners
func (s *Section) Reflow() {
	s.reflow.Emit(struct{}{})
}

// Scroll forwards velocity to listeners while the section is in view.
// It reports whether the velocity was delivered.
func (s *Section) Scroll(velocity float64) bool {
	if !s.InView() {
		return false
	}
	s.scrollSig.Emit(velocity)
	return true
}

// Subscribers returns the number of live listeners
func (s *Section) Subscribers() int {
	return s.resize.Len() + s.reflow.Len() + s.scrollSig.Len()
}
