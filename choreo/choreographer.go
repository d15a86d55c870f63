package choreo

import (
	"math"

	"balloonsim/ambient"
	"balloonsim/anim"
	"balloonsim/log"
)

const defaultLayerBase = 4

// Motion constants, durations in seconds and distances in pixels
const (
	FocusDuration = 1.0
	FocusOffset   = 100.0
	FocusLift     = 120.0
	ResetDuration = 0.3
	BumpOut       = 0.55
	BumpBack      = 0.65
	BumpSlide     = -100.0
	BumpBob       = 8.0
	BumpTilt      = -3.0 // degrees
)

const (
	elasticPeriod  = 0.7
	neutralScale   = 1.0
	layerFirstBase = 1
)

// Choreographer sequences focus, blur and neighbour bumps on a row of
// elements. It owns its ticker; the host calls Advance once per frame.
type Choreographer struct {
	ticker *anim.Ticker
	runner *anim.Runner

	elements []Element
	floats   ambient.Floats

	focus     *anim.Tracks[string]
	neighbors *anim.Tracks[string]
	phases    map[string]Phase

	state FocusState
}

// New creates an idle choreographer
func New() *Choreographer {
	return &Choreographer{
		ticker:    anim.NewTicker(),
		runner:    anim.NewRunner(),
		focus:     anim.NewTracks[string](),
		neighbors: anim.NewTracks[string](),
		phases:    make(map[string]Phase),
		state:     FocusState{NextLayerBase: defaultLayerBase},
	}
}

// Initialize takes over elements: layers are assigned 1..n in order, the
// counter starts at n+2 and every element gets its idle float loop.
// An empty list leaves the choreographer untouched.
func (c *Choreographer) Initialize(elements []Element) {
	if len(elements) == 0 {
		return
	}
	c.elements = append(c.elements[:0], elements...)
	c.runner.Attach(c.ticker)

	for i, el := range c.elements {
		el.Set(PropLayer, float64(i+layerFirstBase))
		c.phases[el.ID()] = PhaseIdle
	}
	c.state.NextLayerBase = len(c.elements) + 2

	targets := make([]anim.Target, len(c.elements))
	for i, el := range c.elements {
		targets[i] = el
	}
	c.floats.Start(c.runner, targets)

	log.Debug(log.CatChoreo, "initialized", "elements", len(c.elements), "next_layer", c.state.NextLayerBase)
}

// Focus lifts el along dir and bumps its nearest left neighbour. A different
// element that was focused is sent back to neutral first.
func (c *Choreographer) Focus(el Element, dir Direction) {
	if el == nil {
		return
	}
	c.runner.Attach(c.ticker)

	if prev := c.state.Active; prev != nil && prev.ID() != el.ID() {
		c.returnHome(prev)
	}

	c.state.Active = el
	c.liftAndSettle(el, dir)
	c.bumpLeftNeighbor(el)

	log.Debug(log.CatChoreo, "focus", "id", el.ID(), "direction", string(dir), "neighbor", c.state.LeftNeighborID())
}

// Blur returns the focused element and any bumped neighbour to neutral.
// The neighbour keeps its layer since its bump never completed.
func (c *Choreographer) Blur() {
	if c.state.Active != nil {
		c.returnHome(c.state.Active)
		c.state.Active = nil
	}
	c.resetLeftNeighbor()
}

// Destroy kills every animation and forgets the elements. The layer counter
// goes back to its initial value. Safe to call more than once.
func (c *Choreographer) Destroy() {
	c.floats.Stop()
	c.focus.KillAll()
	c.resetLeftNeighbor()
	c.neighbors.KillAll()
	c.runner.KillAll()
	c.runner.Detach()

	c.state = FocusState{NextLayerBase: defaultLayerBase}
	c.elements = c.elements[:0]
	clear(c.phases)
}

// Advance runs one frame of the choreographer's ticker
func (c *Choreographer) Advance(dt float64) {
	c.ticker.Tick(dt)
}

// State returns a copy of the focus bookkeeping
func (c *Choreographer) State() FocusState {
	return c.state
}

// Phase returns where the element with id is in its focus cycle
func (c *Choreographer) Phase(id string) Phase {
	return c.phases[id]
}

// Elements returns the elements passed to Initialize
func (c *Choreographer) Elements() []Element {
	return c.elements
}

// Ticker returns the choreographer's frame scheduler
func (c *Choreographer) Ticker() *anim.Ticker {
	return c.ticker
}

// Busy reports whether any animation is still playing
func (c *Choreographer) Busy() bool {
	return c.runner.Len() > c.floats.Len()
}

func focusMotion(dir Direction) (anim.Property, float64) {
	switch dir {
	case DirectionLeft:
		return PropFocusX, -FocusOffset
	case DirectionRight:
		return PropFocusX, FocusOffset
	default:
		return PropFocusY, -FocusLift
	}
}

func (c *Choreographer) liftAndSettle(el Element, dir Direction) {
	id := el.ID()
	axis, amount := focusMotion(dir)

	var tl *anim.Timeline
	tl = anim.NewTimeline(anim.TimelineOptions{
		Defaults:   anim.TweenOptions{Duration: FocusDuration, Ease: anim.Power1InOut},
		OnComplete: func() { c.focus.Release(id, tl) },
	})
	tl.To(el, anim.Props{axis: amount}).To(el, anim.Props{axis: 0})

	c.focus.Set(id, c.runner.Play(tl))
	c.phases[id] = PhaseFocused
}

func (c *Choreographer) returnHome(el Element) {
	id := el.ID()

	var tw *anim.Tween
	tw = anim.NewTween(el,
		anim.Props{PropFocusX: 0, PropFocusY: 0, PropFocusScale: neutralScale},
		anim.TweenOptions{
			Duration: ResetDuration,
			Ease:     anim.Power2Out,
			OnComplete: func() {
				if cur, ok := c.focus.Get(id); ok && cur == anim.Animation(tw) {
					c.phases[id] = PhaseIdle
				}
				c.focus.Release(id, tw)
			},
		})

	c.focus.Set(id, c.runner.Play(tw))
	c.phases[id] = PhaseReturning
}

// findLeftNeighbor returns the element whose center lies strictly left of
// active's center at the smallest horizontal distance. Earlier elements win
// ties.
func (c *Choreographer) findLeftNeighbor(active Element) Element {
	if len(c.elements) == 0 {
		return nil
	}
	activeX := active.Bounds().Center().X
	var closest Element
	closestDistance := math.Inf(1)
	for _, el := range c.elements {
		if el.ID() == active.ID() {
			continue
		}
		x := el.Bounds().Center().X
		if x >= activeX {
			continue
		}
		if d := activeX - x; d < closestDistance {
			closestDistance = d
			closest = el
		}
	}
	return closest
}

func (c *Choreographer) bumpLeftNeighbor(active Element) {
	neighbor := c.findLeftNeighbor(active)
	if neighbor == nil {
		c.resetLeftNeighbor()
		return
	}
	if prev := c.state.LeftNeighbor; prev != nil && prev.ID() != neighbor.ID() {
		c.resetLeftNeighbor()
	}
	c.state.LeftNeighbor = neighbor
	id := neighbor.ID()

	var tl *anim.Timeline
	tl = anim.NewTimeline(anim.TimelineOptions{
		OnComplete: func() {
			c.promote(neighbor)
			c.neighbors.Release(id, tl)
		},
	})
	tl.To(neighbor,
		anim.Props{PropPeerSlideX: BumpSlide, PropPeerBobY: BumpBob, PropPeerTilt: BumpTilt},
		anim.TweenOptions{Duration: BumpOut, Ease: anim.Power2Out},
	).To(neighbor,
		anim.Props{PropPeerSlideX: 0, PropPeerBobY: 0, PropPeerTilt: 0},
		anim.TweenOptions{Duration: BumpBack, Ease: anim.ElasticOut(elasticPeriod)},
	)

	c.neighbors.Set(id, c.runner.Play(tl))
}

// resetLeftNeighbor sends the bumped neighbour back without promoting it
func (c *Choreographer) resetLeftNeighbor() {
	neighbor := c.state.LeftNeighbor
	if neighbor == nil {
		return
	}
	id := neighbor.ID()

	var tw *anim.Tween
	tw = anim.NewTween(neighbor,
		anim.Props{PropPeerSlideX: 0, PropPeerBobY: 0, PropPeerTilt: 0},
		anim.TweenOptions{
			Duration:   ResetDuration,
			Ease:       anim.SineOut,
			OnComplete: func() { c.neighbors.Release(id, tw) },
		})
	c.neighbors.Set(id, c.runner.Play(tw))
	c.state.LeftNeighbor = nil
}

func (c *Choreographer) promote(el Element) {
	layer := c.state.NextLayerBase
	c.state.NextLayerBase++
	el.Set(PropLayer, float64(layer))
	log.Debug(log.CatChoreo, "neighbor promoted", "id", el.ID(), "layer", layer)
}
