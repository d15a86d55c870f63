package anim

// Runner advances a set of animations every tick until they finish
type Runner struct {
	anims []Animation
	reg   *Registration
}

// NewRunner creates an idle runner
func NewRunner() *Runner {
	return &Runner{
		anims: make([]Animation, 0, 8),
	}
}

// Attach registers the runner on a ticker. Attaching twice is a no-op.
func (r *Runner) Attach(t *Ticker) {
	if r.reg.Active() {
		return
	}
	r.reg = t.Add(r.Advance)
}

// Detach removes the runner from its ticker
func (r *Runner) Detach() {
	r.reg.Cancel()
	r.reg = nil
}

// Attached reports whether the runner is registered on a ticker
func (r *Runner) Attached() bool {
	return r.reg.Active()
}

// Play schedules a and returns it
func (r *Runner) Play(a Animation) Animation {
	r.anims = append(r.anims, a)
	return a
}

// Advance steps every live animation by dt and drops finished ones.
// Animations started from completion hooks begin on the next call.
func (r *Runner) Advance(dt float64) {
	n := len(r.anims)
	for i := 0; i < n; i++ {
		a := r.anims[i]
		if a.Done() {
			continue
		}
		a.Advance(dt)
	}

	kept := r.anims[:0]
	for _, a := range r.anims {
		if !a.Done() {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(r.anims); i++ {
		r.anims[i] = nil
	}
	r.anims = kept
}

// Len returns the number of live animations
func (r *Runner) Len() int {
	return len(r.anims)
}

// KillAll kills every live animation
func (r *Runner) KillAll() {
	for _, a := range r.anims {
		a.Kill()
	}
	for i := range r.anims {
		r.anims[i] = nil
	}
	r.anims = r.anims[:0]
}
