// Package anim provides the frame scheduling and tweening primitives used by
// the balloon cluster and the focus choreography.
//
// Everything here is single-goroutine: a host calls Ticker.Tick once per
// frame and all callbacks, tweens and completion hooks run inside that call.
package anim

// TickFunc is called once per frame with the frame delta in seconds
type TickFunc func(dt float64)

type tickEntry struct {
	id      uint64
	fn      TickFunc
	once    bool
	removed bool
}

// Ticker is a frame scheduler owned by a single cluster or choreographer.
// Callbacks run in registration order; callbacks added during a tick first run
// on the following tick.
type Ticker struct {
	entries []*tickEntry
	nextID  uint64
	frame   uint64
	ticking bool
}

// NewTicker creates an empty ticker
func NewTicker() *Ticker {
	return &Ticker{
		entries: make([]*tickEntry, 0, 4),
	}
}

// Registration is the handle returned when a callback is added to a ticker
type Registration struct {
	ticker *Ticker
	entry  *tickEntry
}

// Add registers fn to run on every tick
func (t *Ticker) Add(fn TickFunc) *Registration {
	return t.add(fn, false)
}

// Once registers fn to run on the next tick only
func (t *Ticker) Once(fn TickFunc) *Registration {
	return t.add(fn, true)
}

func (t *Ticker) add(fn TickFunc, once bool) *Registration {
	t.nextID++
	e := &tickEntry{id: t.nextID, fn: fn, once: once}
	t.entries = append(t.entries, e)
	return &Registration{ticker: t, entry: e}
}

// Cancel removes the callback. Safe to call more than once and on nil.
func (r *Registration) Cancel() {
	if r == nil || r.entry == nil || r.entry.removed {
		return
	}
	r.entry.removed = true
	if !r.ticker.ticking {
		r.ticker.compact()
	}
}

// Active reports whether the callback is still registered
func (r *Registration) Active() bool {
	return r != nil && r.entry != nil && !r.entry.removed
}

// Tick runs every registered callback once
func (t *Ticker) Tick(dt float64) {
	t.frame++
	t.ticking = true
	n := len(t.entries)
	for i := 0; i < n; i++ {
		e := t.entries[i]
		if e.removed {
			continue
		}
		if e.once {
			e.removed = true
		}
		e.fn(dt)
	}
	t.ticking = false
	t.compact()
}

// compact drops removed entries while keeping registration order
func (t *Ticker) compact() {
	kept := t.entries[:0]
	for _, e := range t.entries {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(t.entries); i++ {
		t.entries[i] = nil
	}
	t.entries = kept
}

// Len returns the number of active registrations
func (t *Ticker) Len() int {
	n := 0
	for _, e := range t.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// Frame returns the number of ticks run so far
func (t *Ticker) Frame() uint64 {
	return t.frame
}

// Clear cancels every registration
func (t *Ticker) Clear() {
	for _, e := range t.entries {
		e.removed = true
	}
	if !t.ticking {
		t.compact()
	}
}
