// Package game hosts a balloon page in an ebiten window: it turns input
// into page operations, advances the page once per tick, and draws it.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"balloonsim/log"
	"balloonsim/scene"
	"balloonsim/sim"
)

// HeroLoader resolves the hero balloons again after a file change
type HeroLoader func() ([]sim.BalloonConfig, error)

// Game is the ebiten host of one page
type Game struct {
	ctx      context.Context
	config   Config
	page     *scene.Page
	input    InputProvider
	sprites  *Sprites
	renderer *Renderer
	profiler *Profiler
	debug    DebugState

	reload   <-chan struct{}
	loadHero HeroLoader

	width, height int
	pointerInside bool
	frames        uint64
	closed        bool
}

// NewGame creates a host for page. The page is mounted on the first Update.
func NewGame(ctx context.Context, config Config, page *scene.Page, input InputProvider) *Game {
	if input == nil {
		input = NewPlayerInput(config.ScreenWidth, config.ScreenHeight)
	}
	sprites := NewSprites(config.SpriteTTL)
	g := &Game{
		ctx:      ctx,
		config:   config,
		page:     page,
		input:    input,
		sprites:  sprites,
		renderer: NewRenderer(sprites),
		debug:    DebugState{ShowOverlay: config.Debug},
		width:    config.ScreenWidth,
		height:   config.ScreenHeight,
	}
	if config.ProfileDir != "" {
		p, err := NewProfiler(config.ProfileDir)
		if err != nil {
			log.ErrorErr(log.CatHost, "profiling disabled", err)
		} else {
			g.profiler = p
		}
	}
	return g
}

// WatchHero rebuilds the hero cluster from load whenever changes fires
func (g *Game) WatchHero(changes <-chan struct{}, load HeroLoader) {
	g.reload = changes
	g.loadHero = load
}

// Update advances the page by one tick
func (g *Game) Update() error {
	if g.closed || g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if !g.page.Mounted() {
		g.page.Mount(g.ctx)
	}

	g.input.Update()
	if applyInput(g.page, g.input, g.config, &g.pointerInside) {
		g.debug.ShowOverlay = !g.debug.ShowOverlay
	}
	if g.input.JustPressed(ebiten.KeyF2) {
		g.debug.ShowBounds = !g.debug.ShowBounds
	}

	g.drainReload()
	g.page.Update(g.config.dt())
	g.frames++

	if g.profiler != nil {
		g.profiler.Observe(ebiten.ActualFPS())
	}
	return nil
}

func (g *Game) drainReload() {
	if g.reload == nil {
		return
	}
	select {
	case <-g.reload:
	default:
		return
	}
	hero, err := g.loadHero()
	if err != nil {
		log.ErrorErr(log.CatHost, "reloading hero balloons, keeping the current set", err)
		return
	}
	g.page.ReloadHero(hero)
	log.Info(log.CatHost, "hero balloons reloaded", "count", len(hero))
}

// Draw renders the page
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.page, g.debug)
	if g.debug.ShowOverlay {
		ebitenutil.DebugPrint(screen, overlayText(g.page, ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout follows the window size and re-lays out the page when it changes
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.page.Resize(float64(outsideWidth), float64(outsideHeight))
		if p, ok := g.input.(*PlayerInput); ok {
			p.Resize(outsideWidth, outsideHeight)
		}
		log.Debug(log.CatHost, "window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return g.width, g.height
}

// Close tears the page down and frees the sprites. Safe to call more than
// once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.page.Teardown()
	g.sprites.Flush()
}

// Page returns the hosted page
func (g *Game) Page() *scene.Page { return g.page }

// Sprites returns the sprite cache
func (g *Game) Sprites() *Sprites { return g.sprites }

// Debug returns the current debug flags
func (g *Game) Debug() DebugState { return g.debug }

// Frames returns the number of updates run
func (g *Game) Frames() uint64 { return g.frames }

// Run opens the window and blocks until it is closed or ctx is cancelled
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.config.ScreenWidth, g.config.ScreenHeight)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if g.config.TPS > 0 {
		ebiten.SetTPS(g.config.TPS)
	}

	defer g.Close()

	err := ebiten.RunGame(g)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
