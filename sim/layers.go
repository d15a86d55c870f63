package sim

import "slices"

// Layer is the bucket of bodies sharing one z-index
type Layer struct {
	// Z is the layer key
	Z int

	// Bodies in this layer (storage is reused across rebuilds)
	Bodies []*Body

	// Count of bodies currently in the layer
	Count int
}

// NewLayer creates a layer with preallocated body storage
func NewLayer(z, initialCapacity int) *Layer {
	return &Layer{
		Z:      z,
		Bodies: make([]*Body, 0, initialCapacity),
	}
}

// Add appends a body. Callers add each body once per rebuild.
func (l *Layer) Add(b *Body) {
	if l.Count < len(l.Bodies) {
		l.Bodies[l.Count] = b
	} else {
		l.Bodies = append(l.Bodies, b)
	}
	l.Count++
}

// Members returns the bodies in insertion order
func (l *Layer) Members() []*Body {
	return l.Bodies[:l.Count]
}

// Clear empties the layer but keeps its capacity
func (l *Layer) Clear() {
	for i := 0; i < l.Count; i++ {
		l.Bodies[i] = nil
	}
	l.Count = 0
}

// Layers buckets bodies by z-index
type Layers struct {
	byZ  map[int]*Layer
	keys []int
}

// NewLayers creates an empty bucket set
func NewLayers() *Layers {
	return &Layers{
		byZ:  make(map[int]*Layer),
		keys: make([]int, 0, 4),
	}
}

// Rebuild re-buckets bodies, keeping the relative order of bodies within
// each layer. Layers left empty stay allocated for the next frame.
func (ls *Layers) Rebuild(bodies []*Body) {
	for _, l := range ls.byZ {
		l.Clear()
	}
	ls.keys = ls.keys[:0]
	for _, b := range bodies {
		l, ok := ls.byZ[b.ZIndex]
		if !ok {
			l = NewLayer(b.ZIndex, 8)
			ls.byZ[b.ZIndex] = l
		}
		if l.Count == 0 {
			ls.keys = append(ls.keys, b.ZIndex)
		}
		l.Add(b)
	}
	slices.Sort(ls.keys)
}

// Get returns the layer for z, or nil when nothing is on it
func (ls *Layers) Get(z int) *Layer {
	l, ok := ls.byZ[z]
	if !ok || l.Count == 0 {
		return nil
	}
	return l
}

// Keys returns the occupied layer keys in ascending order
func (ls *Layers) Keys() []int {
	return ls.keys
}

// Each calls fn for every occupied layer in ascending key order
func (ls *Layers) Each(fn func(*Layer)) {
	for _, z := range ls.keys {
		fn(ls.byZ[z])
	}
}
