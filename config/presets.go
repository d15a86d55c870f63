package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"balloonsim/sim"
)

//go:embed presets/hero.yaml
var heroPreset []byte

// Preset is a file of balloon configs
type Preset struct {
	Balloons []sim.BalloonConfig `yaml:"balloons"`
}

// DecodePreset reads a preset document. Unknown keys are rejected so a
// misspelt field does not silently fall back to its default.
func DecodePreset(data []byte) ([]sim.BalloonConfig, error) {
	var p Preset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding preset: %w", err)
	}
	return p.Balloons, nil
}

// DefaultHero returns the built-in hero balloons
func DefaultHero() []sim.BalloonConfig {
	balloons, err := DecodePreset(heroPreset)
	if err != nil {
		panic(fmt.Sprintf("built-in hero preset: %v", err))
	}
	return balloons
}

// LoadPreset reads a preset file
func LoadPreset(path string) ([]sim.BalloonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset: %w", err)
	}
	balloons, err := DecodePreset(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return balloons, nil
}

// HeroBalloons resolves the hero cluster: inline balloons first, then the
// preset file, then the built-in set
func (c Config) HeroBalloons() ([]sim.BalloonConfig, error) {
	if len(c.Cluster.Balloons) > 0 {
		return c.Cluster.Balloons, nil
	}
	if c.Cluster.Preset != "" {
		balloons, err := LoadPreset(c.Cluster.Preset)
		if err != nil {
			return nil, err
		}
		if errs := validateBalloons("preset", balloons); len(errs) > 0 {
			return nil, fmt.Errorf("%s: %w", c.Cluster.Preset, errs[0])
		}
		return balloons, nil
	}
	return DefaultHero(), nil
}
