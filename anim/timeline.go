package anim

// TimelineOptions configures a timeline
type TimelineOptions struct {
	// Defaults fill in Duration and Ease for steps that leave them unset
	Defaults TweenOptions

	OnComplete func()
}

// Timeline plays tweens back to back. Each step captures its start values
// when it begins, so a step can return a property to where an earlier step
// moved it from.
type Timeline struct {
	steps  []*Tween
	index  int
	opts   TimelineOptions
	done   bool
	killed bool
}

// NewTimeline creates an empty timeline
func NewTimeline(opts TimelineOptions) *Timeline {
	return &Timeline{
		steps: make([]*Tween, 0, 2),
		opts:  opts,
	}
}

// To appends a step tweening target to `to`
func (tl *Timeline) To(target Target, to Props, opts ...TweenOptions) *Timeline {
	var o TweenOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Duration == 0 {
		o.Duration = tl.opts.Defaults.Duration
	}
	if o.Ease == nil {
		o.Ease = tl.opts.Defaults.Ease
	}
	tl.steps = append(tl.steps, NewTween(target, to, o))
	return tl
}

// Advance implements Animation
func (tl *Timeline) Advance(dt float64) bool {
	if tl.done || tl.killed {
		return true
	}
	for tl.index < len(tl.steps) {
		left, finished := tl.steps[tl.index].advance(dt)
		if !finished {
			return false
		}
		if tl.killed {
			return true
		}
		tl.index++
		dt = left
	}
	tl.done = true
	if tl.opts.OnComplete != nil {
		tl.opts.OnComplete()
	}
	return true
}

// Kill implements Animation
func (tl *Timeline) Kill() {
	if tl == nil {
		return
	}
	tl.killed = true
	for _, s := range tl.steps {
		s.Kill()
	}
}

// Done implements Animation
func (tl *Timeline) Done() bool {
	return tl.done || tl.killed
}

// Duration returns the summed duration of every step, delays included
func (tl *Timeline) Duration() float64 {
	total := 0.0
	for _, s := range tl.steps {
		total += s.opts.Delay + s.opts.Duration
	}
	return total
}

// Step returns the index of the step currently playing
func (tl *Timeline) Step() int {
	return tl.index
}
