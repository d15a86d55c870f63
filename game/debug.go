package game

import (
	"fmt"
	"strings"

	"balloonsim/scene"
)

// DebugState holds debug flags. It lives on the Game so it survives hero
// reloads.
type DebugState struct {
	ShowOverlay bool // text overlay with scroll, cluster and focus state
	ShowBounds  bool // outline each balloon's layout slot
}

// overlayText renders the overlay for page. fps and tps are the measured
// rates.
func overlayText(page *scene.Page, fps, tps float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.1f  TPS %.1f\n", fps, tps)

	s := page.Scroller()
	fmt.Fprintf(&b, "scroll %.0f/%.0f  v=%.0f px/s\n", s.Offset(), s.Max(), s.Velocity())

	hero := page.HeroSection()
	fmt.Fprintf(&b, "hero in view: %t\n", hero.InView())

	if c := page.Cluster(); c != nil {
		st := c.Stats()
		fmt.Fprintf(&b, "cluster %s: running=%t bodies=%d layers=%d\n", c.ID, c.Running(), len(c.Bodies()), st.Layers)
		fmt.Fprintf(&b, "  ticks=%d scrolls=%d impulses=%d collisions=%d captures=%d\n",
			st.Ticks, st.Scrolls, st.Impulses, st.Collisions, st.Captures)
	}

	if ch := page.Choreographer(); ch != nil {
		state := ch.State()
		active := state.ActiveID()
		if active == "" {
			active = "-"
		}
		fmt.Fprintf(&b, "focus %s  neighbor=%s  next layer=%d\n", active, orDash(state.LeftNeighborID()), state.NextLayerBase)
		for _, el := range ch.Elements() {
			fmt.Fprintf(&b, "  %s: %s\n", el.ID(), ch.Phase(el.ID()))
		}
	}

	b.WriteString("[wheel/arrows] scroll  [1-3] focus  [esc] blur  [F1] overlay  [F2] bounds")
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
