package anim

// Tracks maps a stable key to its single in-flight animation.
// Setting a key kills whatever was playing under it.
type Tracks[K comparable] struct {
	m map[K]Animation
}

// NewTracks creates an empty track map
func NewTracks[K comparable]() *Tracks[K] {
	return &Tracks[K]{m: make(map[K]Animation)}
}

// Set stores a under key, killing the previous animation for that key
func (t *Tracks[K]) Set(key K, a Animation) {
	if prev, ok := t.m[key]; ok && prev != a {
		prev.Kill()
	}
	t.m[key] = a
}

// Get returns the animation stored under key
func (t *Tracks[K]) Get(key K) (Animation, bool) {
	a, ok := t.m[key]
	return a, ok
}

// Kill kills and forgets the animation under key
func (t *Tracks[K]) Kill(key K) {
	if a, ok := t.m[key]; ok {
		a.Kill()
		delete(t.m, key)
	}
}

// Release forgets key only while it still maps to a.
// Completion hooks use it so a finished handle never evicts its replacement.
func (t *Tracks[K]) Release(key K, a Animation) {
	if cur, ok := t.m[key]; ok && cur == a {
		delete(t.m, key)
	}
}

// KillAll kills and forgets every animation
func (t *Tracks[K]) KillAll() {
	for k, a := range t.m {
		a.Kill()
		delete(t.m, k)
	}
}

// Len returns the number of tracked animations
func (t *Tracks[K]) Len() int {
	return len(t.m)
}
