package sim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"balloonsim/geom"
)

func mountRow(t *testing.T, n int) (*Cluster, *fakeHost, []*fakeElement) {
	t.Helper()
	host := newFakeHost(geom.Rect{X: 20, Y: 40, W: 900, H: 400})
	els := row(n, 16)
	opts := DefaultOptions()
	opts.Rand = seeded()
	c := NewCluster("hero", host, opts)
	c.Mount(context.Background(), asElements(els), []BalloonConfig{
		{ID: "primary", ZIndex: Int(3)},
		{ID: "secondary", ZIndex: Int(2)},
	})
	return c, host, els
}

func TestCluster_MountBuildsBodiesAndSubscribes(t *testing.T) {
	c, host, _ := mountRow(t, 3)

	require.True(t, c.Mounted())
	require.True(t, c.Running())
	require.Len(t, c.Bodies(), 3)
	require.Equal(t, "primary", c.Bodies()[0].ID)
	require.Equal(t, 2, c.Bodies()[1].ZIndex)
	require.Equal(t, DefaultZIndex, c.Bodies()[2].ZIndex, "missing configs fall back to defaults")
	require.NotEmpty(t, c.Bodies()[2].ID)
	require.Equal(t, 3, host.subscribers())
	require.Equal(t, 2, c.Ticker().Len(), "layout capture plus the loop")
}

func TestCluster_FirstFrameCapturesLayoutThenSteps(t *testing.T) {
	c, _, els := mountRow(t, 2)

	c.Advance(1.0 / 60)
	require.Equal(t, uint64(1), c.Stats().Captures)
	require.Equal(t, uint64(1), c.Stats().Ticks)
	require.Equal(t, 1, c.Ticker().Len())

	b := c.Bodies()[0]
	require.InDelta(t, 55-20, b.BaseCenter.X, 1e-9)
	require.InDelta(t, 175-40, b.BaseCenter.Y, 1e-9)
	require.Equal(t, 1, els[0].writes)
	require.Equal(t, b.Position.X, els[0].offX)
	require.Equal(t, b.Position.Y, els[0].offY)
}

func TestCluster_HostEventsReachBodies(t *testing.T) {
	c, host, els := mountRow(t, 2)
	c.Advance(1.0 / 60)

	host.scroll.Emit(1500)
	require.Less(t, c.Bodies()[0].Velocity.Y, 0.0)
	require.Equal(t, uint64(1), c.Stats().Impulses)

	host.scroll.Emit(2)
	require.Equal(t, uint64(2), c.Stats().Scrolls)
	require.Equal(t, uint64(1), c.Stats().Impulses, "noise is ignored")

	els[1].rest = els[1].rest.Translate(30, 0)
	host.resize.Emit(struct{}{})
	host.reflow.Emit(struct{}{})
	require.Equal(t, uint64(3), c.Stats().Captures)
}

func TestCluster_BoundsHoldWhileRunning(t *testing.T) {
	c, host, _ := mountRow(t, 5)
	for frame := 0; frame < 600; frame++ {
		if frame%40 == 0 {
			host.scroll.Emit(float64(3000 - frame*10))
		}
		c.Advance(1.0 / 60)
		for _, b := range c.Bodies() {
			require.LessOrEqual(t, math.Abs(b.Position.X), b.Limits.X)
			require.LessOrEqual(t, math.Abs(b.Position.Y), b.Limits.Y)
		}
	}
}

func TestCluster_TeardownIsIdempotent(t *testing.T) {
	c, host, els := mountRow(t, 3)
	c.Advance(1.0 / 60)

	c.Teardown()
	require.NotPanics(t, c.Teardown)

	require.False(t, c.Running())
	require.False(t, c.Mounted())
	require.Equal(t, 0, c.Ticker().Len())
	require.Equal(t, 0, host.subscribers())

	writes := els[0].writes
	pos := c.Bodies()[0].Position
	c.Advance(1.0 / 60)
	host.scroll.Emit(2000)
	require.Equal(t, writes, els[0].writes, "no tick after teardown")
	require.Equal(t, pos, c.Bodies()[0].Position)
}

func TestCluster_TeardownBeforeFirstFrame(t *testing.T) {
	c, host, _ := mountRow(t, 2)
	c.Teardown()
	c.Advance(1.0 / 60)

	require.Zero(t, c.Stats().Captures)
	require.Zero(t, c.Stats().Ticks)
	require.Equal(t, 0, host.subscribers())
}

func TestCluster_MountGuards(t *testing.T) {
	host := newFakeHost(geom.Rect{W: 100, H: 100})

	empty := NewCluster("empty", host, DefaultOptions())
	empty.Mount(context.Background(), nil, nil)
	require.False(t, empty.Mounted())
	require.False(t, empty.Running())
	require.NotPanics(t, func() {
		empty.Advance(0.016)
		empty.Scroll(1000)
		empty.Measure()
		empty.Teardown()
	})

	c, _, _ := mountRow(t, 2)
	c.Mount(context.Background(), asElements(row(4, 0)), nil)
	require.Len(t, c.Bodies(), 2, "second mount is ignored")

	c.Teardown()
	c.Mount(context.Background(), asElements(row(4, 0)), nil)
	require.False(t, c.Mounted(), "a torn down cluster stays down")
}

func TestCluster_OwnsItsTicker(t *testing.T) {
	a, _, _ := mountRow(t, 2)
	b, _, _ := mountRow(t, 2)
	require.NotSame(t, a.Ticker(), b.Ticker())

	a.Teardown()
	require.True(t, b.Running())
	b.Advance(0.016)
	require.Equal(t, uint64(1), b.Stats().Ticks)
}
