// Package sim is the balloon cluster physics: body model, integrator,
// per-layer collision resolution, scroll impulses and layout capture.
package sim

import (
	"github.com/google/uuid"
)

// Balloon defaults applied when a config leaves a field unset
const (
	DefaultGradient            = "radial-gradient(circle at 30% 30%, #fff5d6, #f0bb4f 60%, #c8862b)"
	DefaultWidth               = 110.0
	DefaultHeight              = 150.0
	DefaultZIndex              = 1
	DefaultStringLength        = 45.0
	DefaultStringBend          = 12.0
	DefaultStringWaveAmplitude = 8.0
	DefaultStringWaveDuration  = 5.2
	DefaultHorizontalDrift     = 30.0
	MinHorizontalDrift         = 8.0
	DefaultFloatRange          = 90.0
	MinFloatRange              = 12.0
	DefaultRotationRange       = 6.0
)

// BalloonConfig describes one balloon. Pointer fields are optional and fall
// back to the package defaults.
type BalloonConfig struct {
	ID       string `mapstructure:"id" yaml:"id"`
	Gradient string `mapstructure:"gradient" yaml:"gradient,omitempty"`

	Width      *float64 `mapstructure:"width" yaml:"width,omitempty"`
	Height     *float64 `mapstructure:"height" yaml:"height,omitempty"`
	TranslateX *float64 `mapstructure:"translate_x" yaml:"translate_x,omitempty"`
	TranslateY *float64 `mapstructure:"translate_y" yaml:"translate_y,omitempty"`
	ZIndex     *int     `mapstructure:"z_index" yaml:"z_index,omitempty"`

	StringLength        *float64 `mapstructure:"string_length" yaml:"string_length,omitempty"`
	StringBend          *float64 `mapstructure:"string_bend" yaml:"string_bend,omitempty"`
	StringWaveAmplitude *float64 `mapstructure:"string_wave_amplitude" yaml:"string_wave_amplitude,omitempty"`
	StringWaveDuration  *float64 `mapstructure:"string_wave_duration" yaml:"string_wave_duration,omitempty"`
	StringWaveDelay     *float64 `mapstructure:"string_wave_delay" yaml:"string_wave_delay,omitempty"`

	// FloatRange is the maximum vertical displacement in pixels
	FloatRange *float64 `mapstructure:"float_range" yaml:"float_range,omitempty"`
	// HorizontalDrift is the maximum horizontal displacement in pixels
	HorizontalDrift *float64 `mapstructure:"horizontal_drift" yaml:"horizontal_drift,omitempty"`
	// RotationRange is the maximum tilt in degrees
	RotationRange *float64 `mapstructure:"rotation_range" yaml:"rotation_range,omitempty"`
}

// Float returns a pointer to v, for filling optional config fields
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

func orFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// WithID returns a copy of c carrying a generated id when c has none
func (c BalloonConfig) WithID() BalloonConfig {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return c
}

// Fill returns the gradient descriptor or the default fill
func (c BalloonConfig) Fill() string {
	if c.Gradient == "" {
		return DefaultGradient
	}
	return c.Gradient
}

func (c BalloonConfig) W() float64 { return orFloat(c.Width, DefaultWidth) }
func (c BalloonConfig) H() float64 { return orFloat(c.Height, DefaultHeight) }

// Offset returns the rest translation applied to the balloon slot
func (c BalloonConfig) Offset() (x, y float64) {
	return orFloat(c.TranslateX, 0), orFloat(c.TranslateY, 0)
}

// Layer returns the z-index, which doubles as the collision layer
func (c BalloonConfig) Layer() int {
	if c.ZIndex == nil {
		return DefaultZIndex
	}
	return *c.ZIndex
}

// DriftLimit returns the horizontal limit with the minimum applied
func (c BalloonConfig) DriftLimit() float64 {
	return max(orFloat(c.HorizontalDrift, DefaultHorizontalDrift), MinHorizontalDrift)
}

// FloatLimit returns the vertical limit with the minimum applied
func (c BalloonConfig) FloatLimit() float64 {
	return max(orFloat(c.FloatRange, DefaultFloatRange), MinFloatRange)
}

func (c BalloonConfig) Tilt() float64 { return orFloat(c.RotationRange, DefaultRotationRange) }

func (c BalloonConfig) StringLen() float64   { return orFloat(c.StringLength, DefaultStringLength) }
func (c BalloonConfig) StringCurve() float64 { return orFloat(c.StringBend, DefaultStringBend) }

// WaveAmplitude returns the string sway in pixels
func (c BalloonConfig) WaveAmplitude() float64 {
	return orFloat(c.StringWaveAmplitude, DefaultStringWaveAmplitude)
}

// WaveDuration returns the seconds per string sway cycle
func (c BalloonConfig) WaveDuration() float64 {
	return orFloat(c.StringWaveDuration, DefaultStringWaveDuration)
}

func (c BalloonConfig) WaveDelay() float64 { return orFloat(c.StringWaveDelay, 0) }

// Mass is derived from the configured box and never drops below 0.75
func (c BalloonConfig) Mass() float64 {
	return max(c.W()*c.H()/12000, minMass)
}

// Radius is the collision radius of the configured box
func (c BalloonConfig) Radius() float64 {
	return radiusFor(c.W(), c.H())
}

const (
	minMass     = 0.75
	radiusRatio = 0.48
)

func radiusFor(w, h float64) float64 {
	return min(w, h) * radiusRatio
}
