// Package choreo runs the contact form's focus choreography: the focused
// balloon lifts out and settles back, and its nearest left neighbour is
// bumped aside and then promoted to the top layer.
//
// The choreographer never touches physics state. It writes transform
// channels on its elements through anim.Target.
package choreo

import (
	"balloonsim/anim"
	"balloonsim/geom"
)

// Direction hints which way a focused balloon moves
type Direction string

const (
	DirectionDefault Direction = ""
	DirectionLeft    Direction = "left"
	DirectionRight   Direction = "right"
)

// ParseDirection maps a hint to a Direction; unknown hints use the default lift
func ParseDirection(s string) Direction {
	switch Direction(s) {
	case DirectionLeft, DirectionRight:
		return Direction(s)
	}
	return DirectionDefault
}

// Channels written by the choreography
const (
	PropFocusX     anim.Property = "focus_x"
	PropFocusY     anim.Property = "focus_y"
	PropFocusScale anim.Property = "focus_scale"
	PropPeerSlideX anim.Property = "peer_slide_x"
	PropPeerBobY   anim.Property = "peer_bob_y"
	PropPeerTilt   anim.Property = "peer_tilt"
	PropLayer      anim.Property = "layer"
)

// Element is a balloon taking part in the choreography
type Element interface {
	anim.Target

	// ID is stable for the element's lifetime
	ID() string

	// Bounds is the current on-screen box
	Bounds() geom.Rect
}

// Phase is where an element is in its focus cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFocused
	PhaseReturning
)

func (p Phase) String() string {
	switch p {
	case PhaseFocused:
		return "focused"
	case PhaseReturning:
		return "returning"
	default:
		return "idle"
	}
}

// FocusState is the choreography's shared bookkeeping
type FocusState struct {
	// Active is the focused element, nil when nothing is focused
	Active Element

	// LeftNeighbor is the element bumped for Active, nil when none
	LeftNeighbor Element

	// NextLayerBase is handed out, then incremented, on every completed bump
	NextLayerBase int
}

// ActiveID returns the id of the focused element or ""
func (s FocusState) ActiveID() string {
	if s.Active == nil {
		return ""
	}
	return s.Active.ID()
}

// LeftNeighborID returns the id of the bumped neighbour or ""
func (s FocusState) LeftNeighborID() string {
	if s.LeftNeighbor == nil {
		return ""
	}
	return s.LeftNeighbor.ID()
}
