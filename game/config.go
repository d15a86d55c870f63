package game

import "time"

// Config holds host settings that are not part of the page model
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	Title string

	// TPS is the fixed update rate; each Update advances the page by 1/TPS
	TPS int

	// WheelStep is the scroll distance of one wheel notch in pixels
	WheelStep float64

	// KeyStep is the scroll distance of one arrow key press
	KeyStep float64

	// Debug starts with the overlay visible
	Debug bool

	// ProfileDir receives CPU profiles when the frame rate drops; empty
	// disables profiling
	ProfileDir string

	// SpriteTTL is how long an unused balloon sprite stays cached
	SpriteTTL time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 800,
		Title:        "balloonsim",
		TPS:          60,
		WheelStep:    120,
		KeyStep:      80,
		SpriteTTL:    time.Minute,
	}
}

// dt is the simulated time per update
func (c Config) dt() float64 {
	if c.TPS <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TPS)
}
