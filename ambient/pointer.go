package ambient

import (
	"github.com/charmbracelet/harmonica"

	"balloonsim/anim"
	"balloonsim/geom"
)

// Pointer channels written by the parallax
const (
	PropPointerX    anim.Property = "pointer_x"
	PropPointerY    anim.Property = "pointer_y"
	PropPointerTilt anim.Property = "pointer_tilt"
)

const (
	// DefaultPointerRange is the parallax travel in pixels at the box edge
	DefaultPointerRange = 24.0

	pointerTiltDegrees = 6.0
)

// Parallax maps a pointer position inside box to offsets and tilt. The
// relative position runs from -1 at the left/top edge to 1 at the other.
// A box without area yields ok=false.
func Parallax(box geom.Rect, p geom.Vec2, pointerRange float64) (x, y, tilt float64, ok bool) {
	if box.Empty() {
		return 0, 0, 0, false
	}
	relX := ((p.X-box.X)/box.W - 0.5) * 2
	relY := ((p.Y-box.Y)/box.H - 0.5) * 2
	return relX * pointerRange, relY * pointerRange, relX * pointerTiltDegrees, true
}

// PointerTarget is an element the parallax can drive
type PointerTarget interface {
	anim.Target
	Bounds() geom.Rect
}

// Pointer eases an element's parallax toward the latest pointer sample
// with a spring per channel
type Pointer struct {
	target PointerTarget
	Range  float64

	spring harmonica.Spring
	goal   [3]float64
	pos    [3]float64
	vel    [3]float64
}

var pointerProps = [3]anim.Property{PropPointerX, PropPointerY, PropPointerTilt}

// NewPointer creates a parallax driver stepping at fps
func NewPointer(target PointerTarget, pointerRange float64, fps int) *Pointer {
	if pointerRange == 0 {
		pointerRange = DefaultPointerRange
	}
	if fps <= 0 {
		fps = 60
	}
	return &Pointer{
		target: target,
		Range:  pointerRange,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 9.0, 0.85),
	}
}

// Move aims the parallax at pointer position p. Ignored while the target
// has no layout.
func (pt *Pointer) Move(p geom.Vec2) {
	x, y, tilt, ok := Parallax(pt.target.Bounds(), p, pt.Range)
	if !ok {
		return
	}
	pt.goal = [3]float64{x, y, tilt}
}

// Leave aims the parallax back at rest
func (pt *Pointer) Leave() {
	pt.goal = [3]float64{}
}

// Step advances the springs one frame and writes the result
func (pt *Pointer) Step(float64) {
	for i := range pt.pos {
		pt.pos[i], pt.vel[i] = pt.spring.Update(pt.pos[i], pt.vel[i], pt.goal[i])
		pt.target.Set(pointerProps[i], pt.pos[i])
	}
}

// Goal returns the current parallax target
func (pt *Pointer) Goal() (x, y, tilt float64) {
	return pt.goal[0], pt.goal[1], pt.goal[2]
}
