// Package scene is the host-independent model of the page the balloons live
// on: layout, scrolling, and the wiring between the hero cluster, the
// contact row choreography and the ambient pointer balloons. A renderer
// only has to read Balloon.Transform.
package scene

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"balloonsim/ambient"
	"balloonsim/choreo"
	"balloonsim/geom"
	"balloonsim/log"
	"balloonsim/sim"
)

const tracerName = "balloonsim/scene"

const (
	heroClusterID  = "hero"
	heroMinHeight  = 480.0
	heroTop        = 80.0
	heroInset      = 140.0
	galleryRatio   = 0.6
	contactHeight  = 560.0
	contactRowTop  = 80.0
	contactRowH    = 260.0
	footerHeight   = 120.0
	defaultPageFPS = 60
)

// ContactBalloon is one balloon of the contact row, tied to a form section
type ContactBalloon struct {
	Section   string            `mapstructure:"section" yaml:"section"`
	Direction string            `mapstructure:"direction" yaml:"direction"`
	Balloon   sim.BalloonConfig `mapstructure:"balloon" yaml:"balloon"`
}

// AmbientBalloon is a decorative balloon that leans toward the pointer
type AmbientBalloon struct {
	// Anchor is the balloon's top-left corner as a fraction of the contact section
	AnchorX      float64           `mapstructure:"anchor_x" yaml:"anchor_x"`
	AnchorY      float64           `mapstructure:"anchor_y" yaml:"anchor_y"`
	PointerRange float64           `mapstructure:"pointer_range" yaml:"pointer_range"`
	Balloon      sim.BalloonConfig `mapstructure:"balloon" yaml:"balloon"`
}

// Options configures a page
type Options struct {
	Viewport geom.Vec2

	Hero       []sim.BalloonConfig
	HeroRow    Row
	Contact    []ContactBalloon
	ContactRow Row
	Ambient    []AmbientBalloon

	Sim             sim.Options
	ReducedMotion   bool
	ScrollSmoothing float64
	FPS             int
}

// DefaultContact is the contact row: one balloon per form section
func DefaultContact() []ContactBalloon {
	return []ContactBalloon{
		{Section: "details", Direction: "left", Balloon: sim.BalloonConfig{
			ID: "details", Gradient: "radial-gradient(circle at 30% 30%, #fff6d6, #f0b444)",
		}},
		{Section: "event", Balloon: sim.BalloonConfig{
			ID: "event", Gradient: "radial-gradient(circle at 35% 35%, #ffe2f3, #f5a8c9 70%)",
		}},
		{Section: "message", Direction: "right", Balloon: sim.BalloonConfig{
			ID: "message", Gradient: "radial-gradient(circle at 30% 30%, #f8f0ff, #c7a2ff)",
		}},
	}
}

// DefaultAmbient is the pair of pointer balloons flanking the contact form
func DefaultAmbient() []AmbientBalloon {
	return []AmbientBalloon{
		{AnchorX: 0.04, AnchorY: 0.55, PointerRange: ambient.DefaultPointerRange, Balloon: sim.BalloonConfig{
			ID: "ambient-left", Width: sim.Float(90), Height: sim.Float(120),
			Gradient: "radial-gradient(circle at 30% 30%, #fff1d0, #f6c46f 60%, #f0902d)",
		}},
		{AnchorX: 0.86, AnchorY: 0.45, PointerRange: ambient.DefaultPointerRange, Balloon: sim.BalloonConfig{
			ID: "ambient-right", Width: sim.Float(80), Height: sim.Float(108),
			Gradient: "radial-gradient(circle at 30% 30%, #fff8e8, #f8d88f)",
		}},
	}
}

// DefaultOptions returns a page with the default contact and ambient
// balloons and no hero balloons
func DefaultOptions() Options {
	return Options{
		Viewport:   geom.Vec2{X: 1280, Y: 800},
		HeroRow:    DefaultRow(),
		Contact:    DefaultContact(),
		ContactRow: Row{Gap: 32, Align: AlignEnd, Justify: JustifyCenter},
		Ambient:    DefaultAmbient(),
		Sim:        sim.DefaultOptions(),
		FPS:        defaultPageFPS,
	}
}

// Page owns every balloon on the page and the systems animating them
type Page struct {
	opts     Options
	viewport geom.Vec2
	height   float64

	scroller *Scroller
	hero     *Section
	contact  *Section

	cluster *sim.Cluster
	choreo  *choreo.Choreographer

	heroBalloons    []*Balloon
	contactBalloons []*Balloon
	ambientBalloons []*Balloon
	pointers        []*ambient.Pointer
	hovered         []bool

	ctx      context.Context
	mounted  bool
	tornDown bool
}

// NewPage lays out a page for opts. Nothing animates until Mount.
func NewPage(opts Options) *Page {
	if opts.FPS <= 0 {
		opts.FPS = defaultPageFPS
	}
	p := &Page{
		opts:     opts,
		viewport: opts.Viewport,
		scroller: NewScroller(),
		hero:     NewSection("hero", geom.Rect{}),
		contact:  NewSection("contact", geom.Rect{}),
		choreo:   choreo.New(),
		ctx:      context.Background(),
	}
	if opts.ScrollSmoothing > 0 {
		p.scroller.Smoothing = opts.ScrollSmoothing
	}
	p.heroBalloons = p.buildHero(opts.Hero)
	for _, c := range opts.Contact {
		p.contactBalloons = append(p.contactBalloons, NewBalloon(c.Balloon, opts.ReducedMotion))
	}
	for _, a := range opts.Ambient {
		b := NewBalloon(a.Balloon, opts.ReducedMotion)
		p.ambientBalloons = append(p.ambientBalloons, b)
		p.pointers = append(p.pointers, ambient.NewPointer(b, a.PointerRange, opts.FPS))
	}
	p.hovered = make([]bool, len(p.ambientBalloons))
	p.cluster = sim.NewCluster(heroClusterID, p.hero, opts.Sim)
	p.layout()
	return p
}

func (p *Page) buildHero(configs []sim.BalloonConfig) []*Balloon {
	out := make([]*Balloon, len(configs))
	for i, cfg := range configs {
		out[i] = NewBalloon(cfg, p.opts.ReducedMotion)
	}
	return out
}

// layout places every section and balloon for the current viewport
func (p *Page) layout() {
	w, h := p.viewport.X, p.viewport.Y
	heroH := max(h*0.85, heroMinHeight)

	heroRect := geom.Rect{X: w * 0.45, Y: heroTop, W: w * 0.5, H: max(heroH-heroInset, 0)}
	contactY := heroH + h*galleryRatio
	contactRect := geom.Rect{X: 0, Y: contactY, W: w, H: contactHeight}

	placeRow(p.opts.HeroRow, heroRect, p.heroBalloons)
	placeRow(p.opts.ContactRow, geom.Rect{
		X: w * 0.1, Y: contactY + contactRowTop, W: w * 0.8, H: contactRowH,
	}, p.contactBalloons)

	for i, b := range p.ambientBalloons {
		a := p.opts.Ambient[i]
		size := b.Size()
		b.Place(geom.Rect{
			X: contactRect.X + contactRect.W*a.AnchorX,
			Y: contactRect.Y + contactRect.H*a.AnchorY,
			W: size.X,
			H: size.Y,
		})
	}

	p.height = contactY + contactHeight + footerHeight
	p.scroller.SetMax(p.height - h)
	p.syncScroll()

	// listeners measure balloons, so sections move last
	p.hero.Resize(heroRect)
	p.contact.Resize(contactRect)
}

func placeRow(row Row, container geom.Rect, balloons []*Balloon) {
	sizes := make([]geom.Vec2, len(balloons))
	for i, b := range balloons {
		sizes[i] = b.Size()
	}
	for i, slot := range row.Place(container, sizes) {
		balloons[i].Place(slot)
	}
}

func (p *Page) syncScroll() {
	off := p.scroller.Offset()
	p.hero.SetViewport(off, p.viewport.Y)
	p.contact.SetViewport(off, p.viewport.Y)
	for _, group := range [][]*Balloon{p.heroBalloons, p.contactBalloons, p.ambientBalloons} {
		for _, b := range group {
			b.SetScroll(off)
		}
	}
}

// Mount starts the hero cluster and hands the contact row to the
// choreography. Mounting twice or after teardown does nothing.
func (p *Page) Mount(ctx context.Context) {
	if p.mounted || p.tornDown {
		return
	}
	p.mounted = true
	p.ctx = ctx
	p.mountCluster()

	els := make([]choreo.Element, len(p.contactBalloons))
	for i, b := range p.contactBalloons {
		els[i] = b
	}
	p.choreo.Initialize(els)

	log.Info(log.CatHost, "page mounted",
		"hero", len(p.heroBalloons), "contact", len(p.contactBalloons), "ambient", len(p.ambientBalloons))
}

func (p *Page) mountCluster() {
	els := make([]sim.Element, len(p.heroBalloons))
	configs := make([]sim.BalloonConfig, len(p.heroBalloons))
	for i, b := range p.heroBalloons {
		els[i] = b
		configs[i] = b.Config
	}
	p.cluster.Mount(p.ctx, els, configs)
}

// Update advances one frame: scroll first so its impulse lands in this
// frame's integration, then the cluster, the choreography and the ambient
// motion.
func (p *Page) Update(dt float64) {
	if p.tornDown {
		return
	}
	v := p.scroller.Update(dt)
	p.syncScroll()
	if v != 0 {
		p.hero.Scroll(v)
	}

	p.cluster.Advance(dt)
	p.choreo.Advance(dt)
	for _, pt := range p.pointers {
		pt.Step(dt)
	}
	for _, group := range [][]*Balloon{p.heroBalloons, p.contactBalloons, p.ambientBalloons} {
		for _, b := range group {
			b.String.Advance(dt)
		}
	}
}

// ScrollBy scrolls the page by delta px
func (p *Page) ScrollBy(delta float64) {
	p.scroller.ScrollBy(delta)
}

// Resize relays the page out for a new viewport and refreshes the cluster's
// rest frames
func (p *Page) Resize(w, h float64) {
	if w == p.viewport.X && h == p.viewport.Y {
		return
	}
	p.viewport = geom.Vec2{X: w, Y: h}
	p.layout()
	p.hero.Reflow()
	log.Debug(log.CatHost, "page resized", "width", w, "height", h)
}

// Focus focuses the contact balloon tied to section. Unknown sections are ignored.
func (p *Page) Focus(section string) bool {
	i := slices.IndexFunc(p.opts.Contact, func(c ContactBalloon) bool { return c.Section == section })
	return p.FocusIndex(i)
}

// FocusIndex focuses the i-th contact balloon
func (p *Page) FocusIndex(i int) bool {
	if !p.mounted || p.tornDown || i < 0 || i >= len(p.contactBalloons) {
		return false
	}
	p.choreo.Focus(p.contactBalloons[i], choreo.ParseDirection(p.opts.Contact[i].Direction))
	return true
}

// Blur clears the contact row focus
func (p *Page) Blur() {
	if p.tornDown {
		return
	}
	p.choreo.Blur()
}

// PointerMove aims every ambient balloon under pt at it and releases the
// ones the pointer has left. pt is in viewport coordinates.
func (p *Page) PointerMove(pt geom.Vec2) {
	for i, b := range p.ambientBalloons {
		if b.Bounds().Contains(pt) {
			p.pointers[i].Move(pt)
			p.hovered[i] = true
		} else if p.hovered[i] {
			p.pointers[i].Leave()
			p.hovered[i] = false
		}
	}
}

// PointerLeave releases every ambient balloon
func (p *Page) PointerLeave() {
	for i := range p.pointers {
		if p.hovered[i] {
			p.pointers[i].Leave()
			p.hovered[i] = false
		}
	}
}

// ReloadHero tears the hero cluster down and remounts it with configs
func (p *Page) ReloadHero(configs []sim.BalloonConfig) {
	if p.tornDown {
		return
	}
	_, span := otel.Tracer(tracerName).Start(p.ctx, "page.reload_hero")
	defer span.End()
	span.SetAttributes(attribute.Int("hero.balloons", len(configs)))

	p.cluster.Teardown()
	p.opts.Hero = configs
	p.heroBalloons = p.buildHero(configs)
	p.cluster = sim.NewCluster(heroClusterID, p.hero, p.opts.Sim)
	p.layout()
	if p.mounted {
		p.mountCluster()
	}
	log.Info(log.CatHost, "hero reloaded", "balloons", len(configs))
}

// Teardown stops every animation and drops every subscription. Safe to call
// more than once.
func (p *Page) Teardown() {
	if p.tornDown {
		return
	}
	p.tornDown = true
	p.cluster.Teardown()
	p.choreo.Destroy()
	p.PointerLeave()
	log.Info(log.CatHost, "page torn down")
}

// Hero returns the hero balloons in cluster order
func (p *Page) Hero() []*Balloon { return p.heroBalloons }

// Contact returns the contact row balloons
func (p *Page) Contact() []*Balloon { return p.contactBalloons }

// Ambient returns the pointer balloons
func (p *Page) Ambient() []*Balloon { return p.ambientBalloons }

// Cluster returns the hero cluster
func (p *Page) Cluster() *sim.Cluster { return p.cluster }

// Choreographer returns the contact row choreography
func (p *Page) Choreographer() *choreo.Choreographer { return p.choreo }

// Scroller returns the page scroll
func (p *Page) Scroller() *Scroller { return p.scroller }

// HeroSection returns the section hosting the cluster
func (p *Page) HeroSection() *Section { return p.hero }

// ContactSection returns the section holding the contact row
func (p *Page) ContactSection() *Section { return p.contact }

// Viewport returns the viewport size
func (p *Page) Viewport() geom.Vec2 { return p.viewport }

// Height returns the full page height
func (p *Page) Height() float64 { return p.height }

// Mounted reports whether Mount ran and teardown has not
func (p *Page) Mounted() bool { return p.mounted && !p.tornDown }

// DrawOrder returns every balloon back to front: hero first, then the
// contact row and the ambient balloons, each group sorted by layer
func (p *Page) DrawOrder() []*Balloon {
	out := make([]*Balloon, 0, len(p.heroBalloons)+len(p.contactBalloons)+len(p.ambientBalloons))
	for _, group := range [][]*Balloon{p.heroBalloons, p.contactBalloons, p.ambientBalloons} {
		start := len(out)
		out = append(out, group...)
		slices.SortStableFunc(out[start:], func(a, b *Balloon) int {
			return a.Transform().Layer - b.Transform().Layer
		})
	}
	return out
}
