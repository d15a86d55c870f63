package anim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// box is a minimal Target backed by a map
type box map[Property]float64

func (b box) Get(p Property) float64    { return b[p] }
func (b box) Set(p Property, v float64) { b[p] = v }

const x Property = "x"

func TestTicker_RunsInOrderAndCancels(t *testing.T) {
	tk := NewTicker()
	var calls []string

	a := tk.Add(func(float64) { calls = append(calls, "a") })
	tk.Add(func(float64) { calls = append(calls, "b") })
	require.Equal(t, 2, tk.Len())

	tk.Tick(1.0 / 60)
	require.Equal(t, []string{"a", "b"}, calls)

	a.Cancel()
	a.Cancel()
	require.Equal(t, 1, tk.Len())
	require.False(t, a.Active())

	calls = nil
	tk.Tick(1.0 / 60)
	require.Equal(t, []string{"b"}, calls)
	require.Equal(t, uint64(2), tk.Frame())
}

func TestTicker_OnceRunsSingleFrame(t *testing.T) {
	tk := NewTicker()
	n := 0
	tk.Once(func(float64) { n++ })

	tk.Tick(0.016)
	tk.Tick(0.016)
	require.Equal(t, 1, n)
	require.Equal(t, 0, tk.Len())
}

func TestTicker_CancelDuringTick(t *testing.T) {
	tk := NewTicker()
	var second *Registration
	ran := 0
	tk.Add(func(float64) { second.Cancel() })
	second = tk.Add(func(float64) { ran++ })

	tk.Tick(0.016)
	require.Equal(t, 0, ran, "cancelled callback should not run in the same frame")
	require.Equal(t, 1, tk.Len())
}

func TestTicker_AddDuringTickRunsNextFrame(t *testing.T) {
	tk := NewTicker()
	ran := 0
	tk.Once(func(float64) {
		tk.Add(func(float64) { ran++ })
	})

	tk.Tick(0.016)
	require.Equal(t, 0, ran)
	tk.Tick(0.016)
	require.Equal(t, 1, ran)
}

func TestTicker_ClearAndNilRegistration(t *testing.T) {
	tk := NewTicker()
	tk.Add(func(float64) {})
	tk.Add(func(float64) {})
	tk.Clear()
	require.Equal(t, 0, tk.Len())

	var r *Registration
	require.NotPanics(t, r.Cancel)
	require.False(t, r.Active())
}

func TestEase_Endpoints(t *testing.T) {
	eases := map[string]Ease{
		"linear":      Linear,
		"power1InOut": Power1InOut,
		"power2Out":   Power2Out,
		"sineOut":     SineOut,
		"sineInOut":   SineInOut,
		"elasticOut":  ElasticOut(0.7),
	}
	for name, e := range eases {
		t.Run(name, func(t *testing.T) {
			require.InDelta(t, 0, e(0), 1e-9)
			require.InDelta(t, 1, e(1), 1e-9)
		})
	}
}

func TestEase_ElasticOvershoots(t *testing.T) {
	e := ElasticOut(0.7)
	peak := 0.0
	for i := 1; i < 100; i++ {
		if v := e(float64(i) / 100); v > peak {
			peak = v
		}
	}
	require.Greater(t, peak, 1.0, "elastic ease should overshoot the target")
}

func TestTween_InterpolatesFromCapturedStart(t *testing.T) {
	b := box{x: 10}
	tw := NewTween(b, Props{x: 20}, TweenOptions{Duration: 1})

	b[x] = 0 // start values are captured on the first frame, not at construction
	require.False(t, tw.Advance(0.5))
	require.InDelta(t, 10, b[x], 1e-9)

	require.True(t, tw.Advance(0.6))
	require.Equal(t, 20.0, b[x])
	require.True(t, tw.Done())
}

func TestTween_DelayAndCompletion(t *testing.T) {
	b := box{}
	completed := 0
	tw := NewTween(b, Props{x: 1}, TweenOptions{
		Duration:   0.5,
		Delay:      0.25,
		OnComplete: func() { completed++ },
	})

	tw.Advance(0.2)
	require.Equal(t, 0.0, b[x])
	tw.Advance(0.3)
	require.InDelta(t, 0.5, b[x], 1e-9)
	tw.Advance(1)
	tw.Advance(1)
	require.Equal(t, 1, completed)
}

func TestTween_KillSkipsCompletion(t *testing.T) {
	b := box{}
	completed := false
	tw := NewTween(b, Props{x: 1}, TweenOptions{Duration: 1, OnComplete: func() { completed = true }})

	tw.Advance(0.5)
	tw.Kill()
	tw.Kill()
	require.True(t, tw.Advance(1))
	require.False(t, completed)
	require.True(t, tw.Killed())
	require.InDelta(t, 0.5, b[x], 1e-9)
}

func TestTween_YoyoRepeatForever(t *testing.T) {
	b := box{}
	tw := NewTween(b, Props{x: 10}, TweenOptions{
		Duration: 1,
		Repeat:   -1,
		Yoyo:     true,
		From:     Props{x: -10},
	})
	require.Equal(t, -10.0, b[x], "From values apply immediately")

	tw.Advance(0.5)
	require.InDelta(t, 0, b[x], 1e-9)
	tw.Advance(0.75) // 1.25: second cycle plays backwards
	require.InDelta(t, 5, b[x], 1e-9)
	for i := 0; i < 100; i++ {
		require.False(t, tw.Advance(0.37))
	}
	require.GreaterOrEqual(t, b[x], -10.0)
	require.LessOrEqual(t, b[x], 10.0)
}

func TestTween_FiniteYoyoEndsAtStart(t *testing.T) {
	b := box{x: 0}
	tw := NewTween(b, Props{x: 4}, TweenOptions{Duration: 1, Repeat: 1, Yoyo: true})
	require.True(t, tw.Advance(5))
	require.Equal(t, 0.0, b[x])
}

func TestTimeline_ThereAndBack(t *testing.T) {
	b := box{}
	completed := false
	tl := NewTimeline(TimelineOptions{
		Defaults:   TweenOptions{Duration: 1, Ease: Power1InOut},
		OnComplete: func() { completed = true },
	})
	tl.To(b, Props{x: -100}).To(b, Props{x: 0})
	require.Equal(t, 2.0, tl.Duration())

	tl.Advance(1)
	require.InDelta(t, -100, b[x], 1e-9)
	require.Equal(t, 1, tl.Step())

	tl.Advance(0.5)
	require.InDelta(t, -50, b[x], 1e-9)

	require.True(t, tl.Advance(0.5))
	require.InDelta(t, 0, b[x], 1e-9)
	require.True(t, completed)
}

func TestTimeline_CarriesOverflowIntoNextStep(t *testing.T) {
	b := box{}
	tl := NewTimeline(TimelineOptions{Defaults: TweenOptions{Duration: 1}})
	tl.To(b, Props{x: 10}).To(b, Props{x: 0})

	tl.Advance(1.5)
	require.InDelta(t, 5, b[x], 1e-9)
}

func TestTimeline_KillStopsEverything(t *testing.T) {
	b := box{}
	completed := false
	tl := NewTimeline(TimelineOptions{
		Defaults:   TweenOptions{Duration: 1},
		OnComplete: func() { completed = true },
	})
	tl.To(b, Props{x: 10}).To(b, Props{x: 0})
	tl.Advance(0.5)
	tl.Kill()

	require.True(t, tl.Advance(5))
	require.False(t, completed)
	require.InDelta(t, 5, b[x], 1e-9)
}

func TestRunner_DropsFinishedAndStartsChainedNextFrame(t *testing.T) {
	tk := NewTicker()
	r := NewRunner()
	r.Attach(tk)
	r.Attach(tk)
	require.Equal(t, 1, tk.Len())

	b := box{}
	var chained *Tween
	r.Play(NewTween(b, Props{x: 1}, TweenOptions{
		Duration: 0.1,
		OnComplete: func() {
			chained = NewTween(b, Props{x: 2}, TweenOptions{Duration: 0.1})
			r.Play(chained)
		},
	}))

	tk.Tick(0.2)
	require.Equal(t, 1.0, b[x])
	require.Equal(t, 1, r.Len())
	require.Zero(t, chained.Elapsed())

	tk.Tick(0.2)
	require.Equal(t, 2.0, b[x])
	require.Equal(t, 0, r.Len())

	r.Detach()
	r.Detach()
	require.False(t, r.Attached())
	require.Equal(t, 0, tk.Len())
}

func TestRunner_KillAll(t *testing.T) {
	r := NewRunner()
	b := box{}
	tw := NewTween(b, Props{x: 1}, TweenOptions{Duration: 1})
	r.Play(tw)
	r.KillAll()
	require.True(t, tw.Killed())
	require.Equal(t, 0, r.Len())
}

func TestTracks_SetReplacesAndKillsPrevious(t *testing.T) {
	tr := NewTracks[string]()
	b := box{}
	first := NewTween(b, Props{x: 1}, TweenOptions{Duration: 1})
	second := NewTween(b, Props{x: 2}, TweenOptions{Duration: 1})

	tr.Set("a", first)
	tr.Set("a", second)
	require.True(t, first.Killed())
	require.False(t, second.Done())

	got, ok := tr.Get("a")
	require.True(t, ok)
	require.Same(t, second, got)

	tr.Release("a", first)
	require.Equal(t, 1, tr.Len(), "stale release must not evict the replacement")
	tr.Release("a", second)
	require.Equal(t, 0, tr.Len())
}

func TestTracks_KillAndKillAll(t *testing.T) {
	tr := NewTracks[int]()
	b := box{}
	tws := []*Tween{
		NewTween(b, Props{x: 1}, TweenOptions{Duration: 1}),
		NewTween(b, Props{x: 1}, TweenOptions{Duration: 1}),
		NewTween(b, Props{x: 1}, TweenOptions{Duration: 1}),
	}
	for i, tw := range tws {
		tr.Set(i, tw)
	}

	tr.Kill(0)
	tr.Kill(0)
	require.True(t, tws[0].Killed())
	require.Equal(t, 2, tr.Len())

	tr.KillAll()
	require.True(t, tws[1].Killed())
	require.True(t, tws[2].Killed())
	require.Equal(t, 0, tr.Len())
}

func TestCleanup_ReverseOrderOnce(t *testing.T) {
	var c Cleanup
	var order []string
	c.Push("ticker", func() { order = append(order, "ticker") })
	c.Push("resize", func() { order = append(order, "resize") })
	c.Push("scroll", func() { order = append(order, "scroll") })
	require.Equal(t, 3, c.Len())

	ran := c.Run()
	require.Equal(t, []string{"scroll", "resize", "ticker"}, ran)
	require.Equal(t, ran, order)

	require.Empty(t, c.Run())
	require.Equal(t, 0, c.Len())
	require.Len(t, order, 3)
}
