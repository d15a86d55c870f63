// Package config provides configuration types, defaults, presets and
// persistence for balloonsim.
package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"balloonsim/geom"
	"balloonsim/paint"
	"balloonsim/scene"
	"balloonsim/sim"
)

// Config holds all configuration options for balloonsim
type Config struct {
	Window  WindowConfig     `mapstructure:"window" yaml:"window"`
	Cluster ClusterConfig    `mapstructure:"cluster" yaml:"cluster"`
	Contact ContactConfig    `mapstructure:"contact" yaml:"contact"`
	Physics sim.Params       `mapstructure:"physics" yaml:"physics"`
	Scroll  sim.ScrollParams `mapstructure:"scroll" yaml:"scroll"`
	Motion  MotionConfig     `mapstructure:"motion" yaml:"motion"`
	Tracing TracingConfig    `mapstructure:"tracing" yaml:"tracing"`

	Debug   bool   `mapstructure:"debug" yaml:"debug"`
	LogPath string `mapstructure:"log_path" yaml:"log_path"`

	// ProfileDir receives CPU profiles when the frame rate drops
	ProfileDir string `mapstructure:"profile_dir" yaml:"profile_dir,omitempty"`

	// Seed fixes the wobble phases; 0 picks a random seed
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// WindowConfig sizes the desktop window
type WindowConfig struct {
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	Title  string `mapstructure:"title" yaml:"title"`
	TPS    int    `mapstructure:"tps" yaml:"tps"` // ticks per second
}

// ClusterConfig lays out the hero cluster
type ClusterConfig struct {
	Gap     float64 `mapstructure:"gap" yaml:"gap"`
	Align   string  `mapstructure:"align" yaml:"align"`
	Justify string  `mapstructure:"justify" yaml:"justify"`

	// Preset is a YAML file of balloons; empty uses the built-in hero set.
	// Balloons listed inline take precedence over any preset.
	Preset   string              `mapstructure:"preset" yaml:"preset,omitempty"`
	Balloons []sim.BalloonConfig `mapstructure:"balloons" yaml:"balloons,omitempty"`
}

// ContactConfig lays out the contact row and its ambient balloons
type ContactConfig struct {
	Gap      float64                `mapstructure:"gap" yaml:"gap"`
	Align    string                 `mapstructure:"align" yaml:"align"`
	Justify  string                 `mapstructure:"justify" yaml:"justify"`
	Balloons []scene.ContactBalloon `mapstructure:"balloons" yaml:"balloons"`
	Ambient  []scene.AmbientBalloon `mapstructure:"ambient" yaml:"ambient"`
}

// MotionConfig holds accessibility and feel settings
type MotionConfig struct {
	// Reduced stills the string sway
	Reduced         bool    `mapstructure:"reduced" yaml:"reduced"`
	ScrollSmoothing float64 `mapstructure:"scroll_smoothing" yaml:"scroll_smoothing"`
	WheelStep       float64 `mapstructure:"wheel_step" yaml:"wheel_step"` // px per wheel notch
}

// TracingConfig selects the span exporter
type TracingConfig struct {
	// Exporter is "none" (default), "stdout" or "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`
	FilePath string `mapstructure:"file_path" yaml:"file_path,omitempty"`
}

// Defaults returns the default configuration. Hero balloons come from the
// built-in preset and are resolved by Load, so Cluster.Balloons stays empty.
func Defaults() Config {
	row := scene.DefaultRow()
	return Config{
		Window: WindowConfig{Width: 1280, Height: 800, Title: "balloonsim", TPS: 60},
		Cluster: ClusterConfig{
			Gap:     row.Gap,
			Align:   string(row.Align),
			Justify: string(row.Justify),
		},
		Contact: ContactConfig{
			Gap:      32,
			Align:    string(scene.AlignEnd),
			Justify:  string(scene.JustifyCenter),
			Balloons: scene.DefaultContact(),
			Ambient:  scene.DefaultAmbient(),
		},
		Physics: sim.DefaultParams(),
		Scroll:  sim.DefaultScrollParams(),
		Motion: MotionConfig{
			ScrollSmoothing: scene.DefaultScrollSmoothing,
			WheelStep:       120,
		},
		Tracing: TracingConfig{Exporter: "none"},
	}
}

// HeroRow returns the cluster row layout
func (c Config) HeroRow() scene.Row {
	return scene.Row{Gap: c.Cluster.Gap, Align: scene.Align(c.Cluster.Align), Justify: scene.Justify(c.Cluster.Justify)}
}

// ContactRow returns the contact row layout
func (c Config) ContactRow() scene.Row {
	return scene.Row{Gap: c.Contact.Gap, Align: scene.Align(c.Contact.Align), Justify: scene.Justify(c.Contact.Justify)}
}

// PageOptions builds the scene options for hero balloons
func (c Config) PageOptions(hero []sim.BalloonConfig) scene.Options {
	opts := scene.Options{
		Viewport:        geom.Vec2{X: float64(c.Window.Width), Y: float64(c.Window.Height)},
		Hero:            hero,
		HeroRow:         c.HeroRow(),
		Contact:         c.Contact.Balloons,
		ContactRow:      c.ContactRow(),
		Ambient:         c.Contact.Ambient,
		Sim:             sim.Options{Params: c.Physics, Scroll: c.Scroll},
		ReducedMotion:   c.Motion.Reduced,
		ScrollSmoothing: c.Motion.ScrollSmoothing,
		FPS:             c.Window.TPS,
	}
	if c.Seed != 0 {
		opts.Sim.Rand = rand.New(rand.NewSource(c.Seed))
	}
	return opts
}

// Validate checks the configuration and reports every problem found
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window: tps must be positive, got %d", c.Window.TPS))
	}
	if err := c.HeroRow().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cluster: %w", err))
	}
	if err := c.ContactRow().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("contact: %w", err))
	}
	errs = append(errs, validateBalloons("cluster", c.Cluster.Balloons)...)

	contact := make([]sim.BalloonConfig, len(c.Contact.Balloons))
	for i, b := range c.Contact.Balloons {
		contact[i] = b.Balloon
		switch b.Direction {
		case "", "left", "right":
		default:
			errs = append(errs, fmt.Errorf("contact.balloons[%d]: unknown direction %q", i, b.Direction))
		}
	}
	errs = append(errs, validateBalloons("contact", contact)...)

	if d := c.Physics.Damping; d <= 0 || d > 1 {
		errs = append(errs, fmt.Errorf("physics: damping must be in (0, 1], got %v", d))
	}
	if c.Physics.Spring < 0 {
		errs = append(errs, fmt.Errorf("physics: spring must not be negative, got %v", c.Physics.Spring))
	}
	if c.Scroll.MaxVelocity <= 0 {
		errs = append(errs, fmt.Errorf("scroll: max_velocity must be positive, got %v", c.Scroll.MaxVelocity))
	}
	for _, g := range []struct {
		key string
		v   float64
	}{
		{"vertical_gain", c.Scroll.VerticalGain},
		{"horizontal_gain", c.Scroll.HorizontalGain},
		{"noise_floor", c.Scroll.NoiseFloor},
	} {
		if math.IsNaN(g.v) || math.IsInf(g.v, 0) {
			errs = append(errs, fmt.Errorf("scroll: %s must be finite, got %v", g.key, g.v))
		}
	}
	for _, r := range []struct {
		key string
		v   float64
	}{
		{"vertical_reference", c.Scroll.VerticalReference},
		{"horizontal_reference", c.Scroll.HorizontalReference},
	} {
		if !(r.v > 0) || math.IsInf(r.v, 0) {
			errs = append(errs, fmt.Errorf("scroll: %s must be positive, got %v", r.key, r.v))
		}
	}
	if c.Motion.ScrollSmoothing <= 0 {
		errs = append(errs, fmt.Errorf("motion: scroll_smoothing must be positive, got %v", c.Motion.ScrollSmoothing))
	}
	switch c.Tracing.Exporter {
	case "", "none", "stdout":
	case "file":
		if c.Tracing.FilePath == "" {
			errs = append(errs, errors.New("tracing: file exporter needs file_path"))
		}
	default:
		errs = append(errs, fmt.Errorf("tracing: unknown exporter %q", c.Tracing.Exporter))
	}
	return errors.Join(errs...)
}

func validateBalloons(section string, balloons []sim.BalloonConfig) []error {
	var errs []error
	seen := make(map[string]bool, len(balloons))
	for i, b := range balloons {
		if b.ID != "" {
			if seen[b.ID] {
				errs = append(errs, fmt.Errorf("%s.balloons[%d]: duplicate id %q", section, i, b.ID))
			}
			seen[b.ID] = true
		}
		if b.W() <= 0 || b.H() <= 0 {
			errs = append(errs, fmt.Errorf("%s.balloons[%d]: size must be positive", section, i))
		}
		if b.Gradient != "" {
			if _, err := paint.ParseGradient(b.Gradient); err != nil {
				errs = append(errs, fmt.Errorf("%s.balloons[%d]: %w", section, i, err))
			}
		}
	}
	return errs
}
