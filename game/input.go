package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"balloonsim/geom"
	"balloonsim/scene"
)

// InputProvider is what the host reads each frame
type InputProvider interface {
	// Wheel returns the vertical wheel delta since the last frame; positive
	// scrolls the page up
	Wheel() float64

	// Cursor returns the pointer position and whether it is inside the window
	Cursor() (geom.Vec2, bool)

	// JustPressed reports keys pressed this frame
	JustPressed(key ebiten.Key) bool

	// Update latches input for the frame
	Update()
}

// PlayerInput reads mouse and keyboard from ebiten
type PlayerInput struct {
	keys   []ebiten.Key
	width  int
	height int
}

// NewPlayerInput creates an input provider for a window of the given size
func NewPlayerInput(width, height int) *PlayerInput {
	return &PlayerInput{
		keys:   make([]ebiten.Key, 0, 8),
		width:  width,
		height: height,
	}
}

// Wheel implements InputProvider
func (p *PlayerInput) Wheel() float64 {
	_, dy := ebiten.Wheel()
	return dy
}

// Cursor implements InputProvider
func (p *PlayerInput) Cursor() (geom.Vec2, bool) {
	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < p.width && y < p.height
	return geom.Vec2{X: float64(x), Y: float64(y)}, inside
}

// JustPressed implements InputProvider
func (p *PlayerInput) JustPressed(key ebiten.Key) bool {
	for _, k := range p.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Update implements InputProvider
func (p *PlayerInput) Update() {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
}

// Resize tells the provider the new window size
func (p *PlayerInput) Resize(width, height int) {
	p.width, p.height = width, height
}

// ScriptedInput replays a fixed sequence of frames. It drives headless runs.
type ScriptedInput struct {
	Frames []Frame
	frame  int
	cur    Frame
}

// Frame is the input of one update
type Frame struct {
	Wheel  float64
	Cursor *geom.Vec2
	Keys   []ebiten.Key
}

// Wheel implements InputProvider
func (s *ScriptedInput) Wheel() float64 {
	return s.cur.Wheel
}

// Cursor implements InputProvider
func (s *ScriptedInput) Cursor() (geom.Vec2, bool) {
	if s.cur.Cursor == nil {
		return geom.Vec2{}, false
	}
	return *s.cur.Cursor, true
}

// JustPressed implements InputProvider
func (s *ScriptedInput) JustPressed(key ebiten.Key) bool {
	for _, k := range s.cur.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Update implements InputProvider. Past the last frame the input is idle.
func (s *ScriptedInput) Update() {
	if s.frame < len(s.Frames) {
		s.cur = s.Frames[s.frame]
		s.frame++
		return
	}
	s.cur = Frame{}
}

var focusKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

// FocusKey returns the key focusing the i-th contact balloon
func FocusKey(i int) (ebiten.Key, bool) {
	if i < 0 || i >= len(focusKeys) {
		return 0, false
	}
	return focusKeys[i], true
}

// applyInput turns one frame of input into page operations. It returns true
// when the debug overlay should toggle.
func applyInput(page *scene.Page, in InputProvider, cfg Config, inside *bool) (toggleDebug bool) {
	if dy := in.Wheel(); dy != 0 {
		page.ScrollBy(-dy * cfg.WheelStep)
	}
	switch {
	case in.JustPressed(ebiten.KeyArrowDown):
		page.ScrollBy(cfg.KeyStep)
	case in.JustPressed(ebiten.KeyArrowUp):
		page.ScrollBy(-cfg.KeyStep)
	case in.JustPressed(ebiten.KeyPageDown), in.JustPressed(ebiten.KeySpace):
		page.ScrollBy(page.Viewport().Y * 0.9)
	case in.JustPressed(ebiten.KeyPageUp):
		page.ScrollBy(-page.Viewport().Y * 0.9)
	case in.JustPressed(ebiten.KeyHome):
		page.Scroller().ScrollTo(0)
	case in.JustPressed(ebiten.KeyEnd):
		page.Scroller().ScrollTo(page.Scroller().Max())
	}

	for i, k := range focusKeys {
		if in.JustPressed(k) {
			page.FocusIndex(i)
		}
	}
	if in.JustPressed(ebiten.KeyEscape) {
		page.Blur()
	}

	pt, ok := in.Cursor()
	switch {
	case ok:
		page.PointerMove(pt)
		*inside = true
	case *inside:
		page.PointerLeave()
		*inside = false
	}

	return in.JustPressed(ebiten.KeyF1)
}
