package vlist

// Placement is the side of the anchor a floating panel opens against.
type Placement int

const (
	Bottom Placement = iota
	Top
	Left
	Right
)

func (p Placement) String() string {
	switch p {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// DefaultPlacementOrder is the fallback preference used when Place receives
// no order.
var DefaultPlacementOrder = []Placement{Bottom, Top, Left, Right}

// Position is a resolved panel placement: which side won and the panel's
// origin in the boundary's coordinate space.
type Position struct {
	Placement Placement
	X, Y      float64
}

// Place chooses where a floating panel opens relative to its anchor. It
// walks order and returns the first placement whose panel rectangle fits
// inside boundary; when allowShift is set, a candidate that fits on its
// primary axis is nudged along the other axis to stay inside the boundary
// without changing placement. If no candidate fits, the first entry of order
// is returned with its origin clamped into the boundary: the panel may
// still clip, but the caller always gets usable coordinates.
//
// Pure and deterministic: identical inputs always produce identical output.
func Place(anchor, panel, boundary Rect, order []Placement, allowShift bool) Position {
	if len(order) == 0 {
		order = DefaultPlacementOrder
	}

	for _, pl := range order {
		x, y := origin(pl, anchor, panel)
		if allowShift {
			x, y = shift(pl, x, y, panel, boundary)
		}
		if fits(x, y, panel, boundary) {
			return Position{Placement: pl, X: x, Y: y}
		}
	}

	// Last resort: every candidate overflows. Keep the preferred placement
	// and clamp the origin so as much of the panel as possible stays
	// visible.
	x, y := origin(order[0], anchor, panel)
	x = clampFloat(x, boundary.X, boundary.Right()-panel.W)
	y = clampFloat(y, boundary.Y, boundary.Bottom()-panel.H)
	return Position{Placement: order[0], X: x, Y: y}
}

// origin computes the panel origin for a placement, aligned to the anchor's
// leading edge on the cross axis.
func origin(pl Placement, anchor, panel Rect) (x, y float64) {
	switch pl {
	case Bottom:
		return anchor.X, anchor.Bottom()
	case Top:
		return anchor.X, anchor.Y - panel.H
	case Left:
		return anchor.X - panel.W, anchor.Y
	case Right:
		return anchor.Right(), anchor.Y
	}
	return anchor.X, anchor.Bottom()
}

// shift nudges the panel along its cross axis into the boundary. The primary
// axis, the one that separates panel from anchor, is left alone so the
// panel never covers the anchor.
func shift(pl Placement, x, y float64, panel, boundary Rect) (float64, float64) {
	switch pl {
	case Bottom, Top:
		x = clampFloat(x, boundary.X, boundary.Right()-panel.W)
	case Left, Right:
		y = clampFloat(y, boundary.Y, boundary.Bottom()-panel.H)
	}
	return x, y
}

func fits(x, y float64, panel, boundary Rect) bool {
	return x >= boundary.X &&
		y >= boundary.Y &&
		x+panel.W <= boundary.Right() &&
		y+panel.H <= boundary.Bottom()
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
