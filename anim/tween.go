package anim

import "math"

// Property names an animatable numeric channel on a Target
type Property string

// Props maps properties to values
type Props map[Property]float64

// Target is anything a tween can drive
type Target interface {
	Get(p Property) float64
	Set(p Property, v float64)
}

// Animation is an advanceable, cancelable handle
type Animation interface {
	// Advance moves the animation forward by dt seconds and reports whether it has finished
	Advance(dt float64) bool

	// Kill stops the animation without running its completion hook
	Kill()

	// Done reports whether the animation finished or was killed
	Done() bool
}

// TweenOptions configures a tween. Zero values mean "no delay, no repeat, linear".
type TweenOptions struct {
	Duration float64 // seconds
	Ease     Ease
	Delay    float64 // seconds before the first frame
	Repeat   int     // extra cycles; -1 repeats forever
	Yoyo     bool    // odd cycles play backwards

	// From, when set, is applied to the target immediately and used as the start values
	From Props

	OnComplete func()
}

// Tween interpolates a set of properties on one target
type Tween struct {
	target  Target
	to      Props
	from    Props
	opts    TweenOptions
	elapsed float64
	started bool
	done    bool
	killed  bool
}

// NewTween creates a tween from the target's current values (captured on the first frame) to `to`
func NewTween(target Target, to Props, opts TweenOptions) *Tween {
	if opts.Ease == nil {
		opts.Ease = Linear
	}
	tw := &Tween{
		target: target,
		to:     to,
		opts:   opts,
	}
	if opts.From != nil {
		for p, v := range opts.From {
			target.Set(p, v)
		}
		tw.from = opts.From
		tw.started = true
	}
	return tw
}

// Advance implements Animation
func (tw *Tween) Advance(dt float64) bool {
	_, finished := tw.advance(dt)
	return finished
}

// advance returns the part of dt left over after the tween finished
func (tw *Tween) advance(dt float64) (float64, bool) {
	if tw.done || tw.killed {
		return dt, true
	}
	tw.elapsed += dt

	local := tw.elapsed - tw.opts.Delay
	if local < 0 {
		return 0, false
	}
	if !tw.started {
		tw.from = make(Props, len(tw.to))
		for p := range tw.to {
			tw.from[p] = tw.target.Get(p)
		}
		tw.started = true
	}

	if tw.opts.Duration <= 0 {
		tw.render(1)
		tw.finish()
		return local, true
	}

	cycle := math.Floor(local / tw.opts.Duration)
	if tw.opts.Repeat >= 0 && cycle > float64(tw.opts.Repeat) {
		final := 1.0
		if tw.opts.Yoyo && tw.opts.Repeat%2 == 1 {
			final = 0
		}
		tw.render(final)
		tw.finish()
		return local - float64(tw.opts.Repeat+1)*tw.opts.Duration, true
	}

	p := (local - cycle*tw.opts.Duration) / tw.opts.Duration
	if tw.opts.Yoyo && int64(cycle)%2 == 1 {
		p = 1 - p
	}
	tw.render(p)
	return 0, false
}

func (tw *Tween) render(p float64) {
	k := tw.opts.Ease(p)
	for prop, end := range tw.to {
		start := tw.from[prop]
		tw.target.Set(prop, start+(end-start)*k)
	}
}

func (tw *Tween) finish() {
	tw.done = true
	if tw.opts.OnComplete != nil {
		tw.opts.OnComplete()
	}
}

// Kill implements Animation. Killing a finished or killed tween is a no-op.
func (tw *Tween) Kill() {
	if tw == nil {
		return
	}
	tw.killed = true
}

// Done implements Animation
func (tw *Tween) Done() bool {
	return tw.done || tw.killed
}

// Killed reports whether the tween was cancelled before finishing
func (tw *Tween) Killed() bool {
	return tw.killed && !tw.done
}

// Elapsed returns the time the tween has been advanced by, delay included
func (tw *Tween) Elapsed() float64 {
	return tw.elapsed
}
