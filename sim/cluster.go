package sim

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"balloonsim/anim"
	"balloonsim/log"
)

const tracerName = "balloonsim/sim"

// Options configures a cluster
type Options struct {
	Params Params
	Scroll ScrollParams

	// Rand seeds wobble phases; nil uses the global source
	Rand *rand.Rand
}

// DefaultOptions returns the tuned physics and scroll response
func DefaultOptions() Options {
	return Options{
		Params: DefaultParams(),
		Scroll: DefaultScrollParams(),
	}
}

// Stats is a snapshot of cluster activity
type Stats struct {
	Ticks      uint64
	Scrolls    uint64
	Impulses   uint64
	Captures   uint64
	Collisions int
	Layers     int
}

// Cluster owns a set of bodies for the lifetime of one mount. It has its own
// ticker; the host drives it by calling Advance once per frame.
type Cluster struct {
	ID string

	host       Host
	opts       Options
	bodies     []*Body
	integrator *Integrator
	resolver   *Resolver
	coupler    *Coupler
	tracker    *Tracker

	ticker  *anim.Ticker
	loop    *anim.Registration
	cleanup anim.Cleanup

	ctx      context.Context
	span     trace.Span
	mounted  bool
	tornDown bool
	stats    Stats
}

// NewCluster creates an unmounted cluster on host
func NewCluster(id string, host Host, opts Options) *Cluster {
	return &Cluster{
		ID:         id,
		host:       host,
		opts:       opts,
		integrator: NewIntegrator(opts.Params),
		resolver:   NewResolver(opts.Params),
		coupler:    NewCoupler(opts.Scroll),
		tracker:    NewTracker(),
		ticker:     anim.NewTicker(),
		ctx:        context.Background(),
	}
}

// Mount builds one body per element, subscribes to the host and starts the
// simulation loop. Layout is captured on the first frame. Configs shorter
// than elements leave the remaining balloons on defaults. Mounting without
// elements, twice, or after teardown does nothing.
func (c *Cluster) Mount(ctx context.Context, elements []Element, configs []BalloonConfig) {
	if c.mounted || c.tornDown || len(elements) == 0 {
		return
	}
	c.mounted = true

	c.ctx, c.span = otel.Tracer(tracerName).Start(ctx, "cluster.lifetime",
		trace.WithAttributes(
			attribute.String("cluster.id", c.ID),
			attribute.Int("cluster.bodies", len(elements)),
		))

	c.bodies = make([]*Body, len(elements))
	for i, el := range elements {
		var cfg BalloonConfig
		if i < len(configs) {
			cfg = configs[i]
		}
		c.bodies[i] = NewBody(cfg, el, c.opts.Rand)
	}
	c.cleanup.Push("span", func() { c.span.End() })

	c.ticker.Once(func(float64) { c.Measure() })

	if c.host != nil {
		c.cleanup.Push("resize", c.host.OnResize(c.Measure))
		c.cleanup.Push("reflow", c.host.OnReflow(c.Measure))
	}
	c.start()
	if c.host != nil {
		c.cleanup.Push("scroll", c.host.OnScroll(c.Scroll))
	}

	log.Info(log.CatSim, "cluster mounted", "id", c.ID, "bodies", len(c.bodies))
}

func (c *Cluster) start() {
	if len(c.bodies) == 0 || c.loop.Active() {
		return
	}
	c.loop = c.ticker.Add(func(float64) { c.Step() })
	c.cleanup.Push("loop", c.stop)
}

func (c *Cluster) stop() {
	if !c.loop.Active() {
		return
	}
	c.loop.Cancel()
	c.loop = nil
}

// Advance runs one frame of the cluster's ticker
func (c *Cluster) Advance(dt float64) {
	c.ticker.Tick(dt)
}

// Step integrates every body, resolves collisions and writes the result to
// the elements
func (c *Cluster) Step() {
	if len(c.bodies) == 0 {
		return
	}
	c.integrator.Step(c.bodies)
	c.resolver.Resolve(c.bodies)
	for _, b := range c.bodies {
		b.Commit()
	}
	c.stats.Ticks++
	c.stats.Collisions = c.resolver.Pairs
	c.stats.Layers = len(c.resolver.Layers().Keys())
}

// Scroll applies the impulse for a scroll velocity in px/s
func (c *Cluster) Scroll(velocity float64) {
	if c.tornDown {
		return
	}
	c.stats.Scrolls++
	if c.coupler.Apply(c.bodies, velocity) {
		c.stats.Impulses++
		log.Debug(log.CatSim, "scroll impulse", "id", c.ID, "velocity", velocity)
	}
}

// Measure recalibrates every body's rest frame from the current layout
func (c *Cluster) Measure() {
	if len(c.bodies) == 0 || c.host == nil || c.tornDown {
		return
	}
	_, span := otel.Tracer(tracerName).Start(c.ctx, "cluster.measure")
	defer span.End()

	n := c.tracker.Capture(c.host.Bounds(), c.bodies)
	c.stats.Captures++
	span.SetAttributes(attribute.Int("cluster.measured", n))
	if n == 0 {
		log.Debug(log.CatSim, "layout capture skipped", "id", c.ID)
	}
}

// Teardown stops the loop, drops host subscriptions and ends the lifetime
// span, in reverse order of setup. Safe to call more than once.
func (c *Cluster) Teardown() {
	if c.tornDown {
		return
	}
	c.tornDown = true
	ran := c.cleanup.Run()
	c.ticker.Clear()
	if len(ran) > 0 {
		log.Info(log.CatSim, "cluster torn down", "id", c.ID, "released", len(ran))
	}
}

// Bodies returns the simulated bodies in element order
func (c *Cluster) Bodies() []*Body {
	return c.bodies
}

// Running reports whether the simulation loop is registered
func (c *Cluster) Running() bool {
	return c.loop.Active()
}

// Mounted reports whether Mount built bodies and teardown has not run
func (c *Cluster) Mounted() bool {
	return c.mounted && !c.tornDown
}

// Ticker returns the cluster's own frame scheduler
func (c *Cluster) Ticker() *anim.Ticker {
	return c.ticker
}

// Stats returns activity counters
func (c *Cluster) Stats() Stats {
	return c.stats
}
