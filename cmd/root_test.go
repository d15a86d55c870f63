package cmd

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"balloonsim/config"
)

func yamlViper(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return v
}

func TestDecodeConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	v := yamlViper(t, "window:\n  width: 900\nphysics:\n  damping: 0.9\n")
	c, err := decodeConfig(v)
	require.NoError(t, err)

	d := config.Defaults()
	require.Equal(t, 900, c.Window.Width)
	require.Equal(t, d.Window.Height, c.Window.Height)
	require.Equal(t, 0.9, c.Physics.Damping)
	require.Equal(t, d.Contact.Balloons, c.Contact.Balloons)
	require.Equal(t, d.Motion.WheelStep, c.Motion.WheelStep)
}

func TestDecodeConfig_ListsReplaceDefaults(t *testing.T) {
	v := yamlViper(t, `
contact:
  balloons:
    - section: only
      direction: right
      balloon:
        id: only
        width: 60
`)
	c, err := decodeConfig(v)
	require.NoError(t, err)
	require.Len(t, c.Contact.Balloons, 1)
	require.Equal(t, "only", c.Contact.Balloons[0].Section)
	require.Equal(t, 60.0, c.Contact.Balloons[0].Balloon.W())
	require.Nil(t, c.Contact.Balloons[0].Balloon.TranslateX)
	require.Len(t, c.Contact.Ambient, 2, "lists absent from the file keep their defaults")
}

func TestDecodeConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BALLOONSIM_WINDOW_WIDTH", "1024")
	t.Setenv("BALLOONSIM_MOTION_REDUCED", "true")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c, err := decodeConfig(v)
	require.NoError(t, err)
	require.Equal(t, 1024, c.Window.Width)
	require.True(t, c.Motion.Reduced)
}

func TestHeroLoader_RereadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.Save(path, config.Defaults()))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	load := heroLoader(v)
	hero, err := load()
	require.NoError(t, err)
	require.Len(t, hero, 6)

	preset := filepath.Join(dir, "hero.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("balloons:\n  - id: one\n  - id: two\n"), 0o644))
	c := config.Defaults()
	c.Cluster.Preset = preset
	require.NoError(t, config.Save(path, c))

	hero, err = load()
	require.NoError(t, err)
	require.Len(t, hero, 2)

	c.Physics.Damping = 2
	require.NoError(t, config.Save(path, c))
	_, err = load()
	require.ErrorContains(t, err, "physics: damping", "an invalid edit is rejected")
}

func TestGameConfig(t *testing.T) {
	c := config.Defaults()
	c.Window.Width = 1000
	c.Motion.WheelStep = 60
	c.Debug = true
	g := gameConfig(c)
	require.Equal(t, 1000, g.ScreenWidth)
	require.Equal(t, 60.0, g.WheelStep)
	require.True(t, g.Debug)
	require.Equal(t, "balloonsim", g.Title)
}

func simConfig() config.Config {
	c := config.Defaults()
	c.Seed = 11
	return c
}

func TestSimulate_ScrollAndFocus(t *testing.T) {
	r, err := Simulate(context.Background(), simConfig(), SimulateOptions{Ticks: 45, Scroll: 300, Focus: "message"})
	require.NoError(t, err)

	require.Equal(t, 45, r.Ticks)
	require.InDelta(t, 300, r.Scroll, 0.5)
	require.True(t, r.HeroInView)
	require.GreaterOrEqual(t, r.Impulses, uint64(1))
	require.Equal(t, uint64(1), r.Captures)
	require.Equal(t, "message", r.Focused)
	require.Equal(t, "event", r.Neighbor)

	require.Len(t, r.Hero, 6)
	hero := config.DefaultHero()
	for i, b := range r.Hero {
		require.Equal(t, hero[i].ID, b.ID)
		require.LessOrEqual(t, math.Abs(b.X), hero[i].DriftLimit()+0.01)
		require.LessOrEqual(t, math.Abs(b.Y), hero[i].FloatLimit()+0.01)
	}
	require.Len(t, r.Contact, 3)
	require.Greater(t, r.Contact[2].X, 0.0, "message is still on its way out")
}

func TestSimulate_IsDeterministicForASeed(t *testing.T) {
	a, err := Simulate(context.Background(), simConfig(), SimulateOptions{Ticks: 90, Scroll: 200})
	require.NoError(t, err)
	b, err := Simulate(context.Background(), simConfig(), SimulateOptions{Ticks: 90, Scroll: 200})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSimulate_Errors(t *testing.T) {
	_, err := Simulate(context.Background(), simConfig(), SimulateOptions{Ticks: 0})
	require.ErrorContains(t, err, "ticks must be positive")

	_, err = Simulate(context.Background(), simConfig(), SimulateOptions{Ticks: 10, Focus: "nowhere"})
	require.ErrorContains(t, err, `unknown contact section "nowhere"`)

	c := simConfig()
	c.Cluster.Preset = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Simulate(context.Background(), c, SimulateOptions{Ticks: 10})
	require.ErrorContains(t, err, "loading hero balloons")
}

func TestSimulate_WritesSprites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sprites")
	r, err := Simulate(context.Background(), simConfig(), SimulateOptions{Ticks: 5, Sprites: dir})
	require.NoError(t, err)
	require.Len(t, r.Sprites, 6+3+2)
	for _, p := range r.Sprites {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
	require.FileExists(t, filepath.Join(dir, "primary.png"))
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, SimulationReport{
		Ticks:   3,
		Focused: "details",
		Hero:    []BalloonReport{{ID: "primary", X: 1.25, Layer: 3}},
	}))
	out := buf.String()
	require.Contains(t, out, "ticks: 3")
	require.Contains(t, out, "focused: details")
	require.Contains(t, out, "  - id: primary")
	require.NotContains(t, out, "neighbor:")
}

func TestRunInit_WritesConfigAndPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	preset := filepath.Join(dir, "presets", "hero.yaml")

	var out bytes.Buffer
	initCmd.SetOut(&out)
	require.NoError(t, initCmd.Flags().Set("preset", preset))
	t.Cleanup(func() {
		_ = initCmd.Flags().Set("preset", "")
		initCmd.SetOut(nil)
	})

	require.NoError(t, runInit(initCmd, []string{path}))
	require.FileExists(t, path)
	require.FileExists(t, preset)
	require.Contains(t, out.String(), "wrote "+path)

	got, err := config.LoadPreset(preset)
	require.NoError(t, err)
	require.Equal(t, config.DefaultHero(), got)

	require.Error(t, runInit(initCmd, []string{path}), "existing config is never overwritten")
}
