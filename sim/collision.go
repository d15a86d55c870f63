package sim

import "balloonsim/geom"

// Resolver separates overlapping bodies that share a layer.
// Pairs are resolved once each per pass with no relaxation, so several
// simultaneous overlaps may leave a small residue for one frame.
type Resolver struct {
	Params Params
	layers *Layers

	// Pairs counts overlapping pairs handled in the last pass
	Pairs int
}

// NewResolver creates a resolver with the given constants
func NewResolver(p Params) *Resolver {
	return &Resolver{
		Params: p,
		layers: NewLayers(),
	}
}

// Resolve checks every unordered pair within each layer
func (r *Resolver) Resolve(bodies []*Body) {
	r.Pairs = 0
	if len(bodies) < 2 {
		return
	}
	r.layers.Rebuild(bodies)
	r.layers.Each(func(l *Layer) {
		members := l.Members()
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				if r.ResolvePair(members[i], members[j]) {
					r.Pairs++
				}
			}
		}
	})
}

// Layers exposes the buckets built by the last pass
func (r *Resolver) Layers() *Layers {
	return r.layers
}

// ResolvePair pushes a and b apart in proportion to the other's mass and, if
// they are still approaching, exchanges an impulse along the contact normal.
// Both bodies are put back inside their limits afterwards. Returns whether
// the pair overlapped.
func (r *Resolver) ResolvePair(a, b *Body) bool {
	d := b.Center().Sub(a.Center())
	distance := d.Len()
	minDistance := a.Radius + b.Radius
	if distance >= minDistance {
		return false
	}

	// Coincident centers have no direction, push along x
	n := geom.Vec2{X: 1}
	if distance > 0 {
		n = d.Scale(1 / distance)
	}

	ma, mb := a.mass(), b.mass()
	total := ma + mb
	overlap := minDistance - distance + r.Params.CollisionSlop

	a.Position = a.Position.Sub(n.Scale(overlap * mb / total))
	b.Position = b.Position.Add(n.Scale(overlap * ma / total))

	rel := b.Velocity.Sub(a.Velocity).Dot(n)
	if rel < 0 {
		j := (-(1 + r.Params.CollisionRestitution) * rel) / total
		a.Velocity = a.Velocity.Sub(n.Scale(j * mb))
		b.Velocity = b.Velocity.Add(n.Scale(j * ma))
	}

	enforceBounds(a, r.Params.RestitutionX, r.Params.RestitutionY)
	enforceBounds(b, r.Params.RestitutionX, r.Params.RestitutionY)
	return true
}
