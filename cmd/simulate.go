package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"balloonsim/config"
	"balloonsim/game"
	"balloonsim/paint"
	"balloonsim/scene"
	"balloonsim/tracing"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the page headless and print where every balloon ends up",
	Long: `Runs the page for a fixed number of ticks without opening a window,
optionally scrolling and focusing a contact section along the way, then
prints a YAML report of the cluster state. --sprites writes each balloon's
rendered body as a PNG.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Int("ticks", 600, "ticks to run")
	simulateCmd.Flags().Float64("scroll", 0, "px to scroll at the first tick")
	simulateCmd.Flags().String("focus", "", "contact section to focus at the first tick")
	simulateCmd.Flags().String("sprites", "", "directory to write balloon sprites into")
	rootCmd.AddCommand(simulateCmd)
}

// SimulateOptions drives a headless run
type SimulateOptions struct {
	Ticks   int
	Scroll  float64
	Focus   string
	Sprites string
}

// BalloonReport is one balloon in a simulation report
type BalloonReport struct {
	ID       string  `yaml:"id"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	Layer    int     `yaml:"layer"`
}

// SimulationReport summarises a headless run
type SimulationReport struct {
	Ticks      int             `yaml:"ticks"`
	Scroll     float64         `yaml:"scroll"`
	HeroInView bool            `yaml:"hero_in_view"`
	Impulses   uint64          `yaml:"impulses"`
	Collisions int             `yaml:"collisions"`
	Captures   uint64          `yaml:"captures"`
	Focused    string          `yaml:"focused,omitempty"`
	Neighbor   string          `yaml:"neighbor,omitempty"`
	Hero       []BalloonReport `yaml:"hero"`
	Contact    []BalloonReport `yaml:"contact"`
	Sprites    []string        `yaml:"sprites,omitempty"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	tp, err := tracing.NewProvider(tracing.Config{Exporter: cfg.Tracing.Exporter, FilePath: cfg.Tracing.FilePath})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	flags := cmd.Flags()
	opts := SimulateOptions{}
	opts.Ticks, _ = flags.GetInt("ticks")
	opts.Scroll, _ = flags.GetFloat64("scroll")
	opts.Focus, _ = flags.GetString("focus")
	opts.Sprites, _ = flags.GetString("sprites")

	report, err := Simulate(cmd.Context(), cfg, opts)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report)
}

// Simulate runs the page described by c headless
func Simulate(ctx context.Context, c config.Config, opts SimulateOptions) (SimulationReport, error) {
	if opts.Ticks <= 0 {
		return SimulationReport{}, fmt.Errorf("ticks must be positive, got %d", opts.Ticks)
	}
	page, err := buildPage(c)
	if err != nil {
		return SimulationReport{}, fmt.Errorf("loading hero balloons: %w", err)
	}

	first := game.Frame{}
	if opts.Scroll != 0 && c.Motion.WheelStep > 0 {
		first.Wheel = -opts.Scroll / c.Motion.WheelStep
	}
	if opts.Focus != "" {
		i := slices.IndexFunc(c.Contact.Balloons, func(b scene.ContactBalloon) bool { return b.Section == opts.Focus })
		key, ok := game.FocusKey(i)
		if !ok {
			return SimulationReport{}, fmt.Errorf("unknown contact section %q", opts.Focus)
		}
		first.Keys = []ebiten.Key{key}
	}

	gc := gameConfig(c)
	gc.ProfileDir = ""
	g := game.NewGame(ctx, gc, page, &game.ScriptedInput{Frames: []game.Frame{first}})
	defer g.Close()

	for i := 0; i < opts.Ticks; i++ {
		if err := g.Update(); err != nil {
			break
		}
	}

	report := buildReport(page, g.Frames())
	if opts.Sprites != "" {
		paths, err := writeSprites(g, opts.Sprites)
		if err != nil {
			return report, err
		}
		report.Sprites = paths
	}
	return report, nil
}

func buildReport(page *scene.Page, ticks uint64) SimulationReport {
	r := SimulationReport{
		Ticks:      int(ticks),
		Scroll:     round(page.Scroller().Offset()),
		HeroInView: page.HeroSection().InView(),
	}
	if c := page.Cluster(); c != nil {
		st := c.Stats()
		r.Impulses, r.Collisions, r.Captures = st.Impulses, st.Collisions, st.Captures
		hero := page.Hero()
		for i, b := range c.Bodies() {
			var rot float64
			if i < len(hero) {
				rot = hero[i].Get(scene.PropRotate)
			}
			r.Hero = append(r.Hero, BalloonReport{
				ID:       b.ID,
				X:        round(b.Position.X),
				Y:        round(b.Position.Y),
				Rotation: round(rot),
				Layer:    b.ZIndex,
			})
		}
	}
	state := page.Choreographer().State()
	r.Focused, r.Neighbor = state.ActiveID(), state.LeftNeighborID()
	for _, b := range page.Contact() {
		t := b.Transform()
		r.Contact = append(r.Contact, BalloonReport{
			ID: b.ID(), X: round(t.X), Y: round(t.Y), Rotation: round(t.Rotate), Layer: t.Layer,
		})
	}
	return r
}

func writeSprites(g *game.Game, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sprite directory: %w", err)
	}
	var paths []string
	page := g.Page()
	for _, b := range slices.Concat(page.Hero(), page.Contact(), page.Ambient()) {
		size := b.Size()
		w, h := int(math.Ceil(size.X)), int(math.Ceil(size.Y))
		img := g.Sprites().Raster(b.Config.Fill(), w, h)
		path := filepath.Join(dir, b.ID()+".png")
		if err := paint.SavePNG(img, path); err != nil {
			return paths, fmt.Errorf("writing sprite %s: %w", b.ID(), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeReport(w io.Writer, r SimulationReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
