package ambient

import (
	"math"

	"balloonsim/geom"
	"balloonsim/sim"
)

const (
	baseStringDuration     = 3.0 // seconds for one sway at speed 1
	defaultStringAmplitude = 10.0
)

// StringWave is the sway of one balloon string
type StringWave struct {
	Width     float64 // px
	Lean      float64 // degrees
	Amplitude float64 // px
	Speed     float64 // playback rate relative to the base sway
	Progress  float64 // [0, 1)
	Enabled   bool
}

// NewStringWave derives the sway from cfg. Under reduced motion the string
// hangs still.
func NewStringWave(cfg sim.BalloonConfig, reducedMotion bool) *StringWave {
	amp := defaultStringAmplitude
	if cfg.StringWaveAmplitude != nil {
		amp = *cfg.StringWaveAmplitude
	}
	bend := 0.0
	if cfg.StringBend != nil {
		bend = *cfg.StringBend
	}
	duration := baseStringDuration
	if cfg.StringWaveDuration != nil {
		duration = *cfg.StringWaveDuration
	}
	duration = max(duration, 1)

	w := &StringWave{
		Width:     geom.Clamp(amp*2.4, 28, 60),
		Lean:      bend * 0.08,
		Amplitude: cfg.WaveAmplitude(),
		Speed:     geom.Clamp(baseStringDuration/duration, 0.35, 2),
		Enabled:   !reducedMotion,
	}
	if delay := cfg.WaveDelay(); delay != 0 {
		w.Progress = math.Mod(math.Mod(delay, duration)+duration, duration) / duration
	}
	return w
}

// Advance moves the sway forward by dt seconds
func (w *StringWave) Advance(dt float64) {
	if !w.Enabled {
		return
	}
	w.Progress = math.Mod(w.Progress+dt*w.Speed/baseStringDuration, 1)
}

// Offset returns the horizontal displacement of the string tip
func (w *StringWave) Offset() float64 {
	if !w.Enabled {
		return 0
	}
	return math.Sin(2*math.Pi*w.Progress) * w.Amplitude
}
