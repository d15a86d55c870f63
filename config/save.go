package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultHeader = `# balloonsim configuration
# Hero balloons come from the built-in preset unless cluster.preset points
# at a YAML file or cluster.balloons lists them inline.
`

// WriteDefaultConfig writes the default configuration to path, creating
// parent directories. An existing file is left alone.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	return Save(path, Defaults())
}

// Save writes cfg to path as YAML
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(defaultHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = enc.Close()

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// WriteHeroPreset copies the built-in hero preset to path so it can be
// edited and pointed at by cluster.preset. An existing file is left alone.
func WriteHeroPreset(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("preset %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating preset directory: %w", err)
		}
	}
	if err := os.WriteFile(path, heroPreset, 0o644); err != nil {
		return fmt.Errorf("writing preset: %w", err)
	}
	return nil
}
