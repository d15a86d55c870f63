package scene

import (
	"fmt"

	"balloonsim/geom"
)

// Align places items on the cross axis of a row
type Align string

const (
	AlignStart  Align = "flex-start"
	AlignCenter Align = "center"
	AlignEnd    Align = "flex-end"
)

// Justify distributes items on the main axis of a row
type Justify string

const (
	JustifyStart   Justify = "flex-start"
	JustifyCenter  Justify = "center"
	JustifyEnd     Justify = "flex-end"
	JustifyBetween Justify = "space-between"
)

// Row lays items out left to right inside a container
type Row struct {
	Gap     float64
	Align   Align
	Justify Justify
}

// DefaultRow is the cluster's row: 16 px gaps, bottom aligned, packed left
func DefaultRow() Row {
	return Row{Gap: 16, Align: AlignEnd, Justify: JustifyStart}
}

// Validate reports unknown alignment keywords
func (r Row) Validate() error {
	switch r.Align {
	case AlignStart, AlignCenter, AlignEnd:
	default:
		return fmt.Errorf("unknown align %q", r.Align)
	}
	switch r.Justify {
	case JustifyStart, JustifyCenter, JustifyEnd, JustifyBetween:
	default:
		return fmt.Errorf("unknown justify %q", r.Justify)
	}
	if r.Gap < 0 {
		return fmt.Errorf("negative gap %v", r.Gap)
	}
	return nil
}

// Place returns one slot per size. Items never shrink; a row wider than
// its container overflows to the right.
func (r Row) Place(container geom.Rect, sizes []geom.Vec2) []geom.Rect {
	slots := make([]geom.Rect, len(sizes))
	if len(sizes) == 0 {
		return slots
	}

	used := r.Gap * float64(len(sizes)-1)
	for _, s := range sizes {
		used += s.X
	}
	free := max(container.W-used, 0)

	x := container.X
	gap := r.Gap
	switch r.Justify {
	case JustifyCenter:
		x += free / 2
	case JustifyEnd:
		x += free
	case JustifyBetween:
		if len(sizes) > 1 {
			gap += free / float64(len(sizes)-1)
		}
	}

	for i, s := range sizes {
		y := container.Y
		switch r.Align {
		case AlignCenter:
			y += (container.H - s.Y) / 2
		case AlignEnd:
			y += container.H - s.Y
		}
		slots[i] = geom.Rect{X: x, Y: y, W: s.X, H: s.Y}
		x += s.X + gap
	}
	return slots
}
