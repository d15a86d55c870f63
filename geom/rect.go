package geom

// Rect is an axis-aligned box. X and Y are the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Center returns the midpoint of the box
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the box has no area (not laid out yet)
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translate returns the box moved by (dx, dy)
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Contains reports whether p lies inside the box
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Bottom returns the y coordinate of the lower edge
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 {
	return r.X + r.W
}
