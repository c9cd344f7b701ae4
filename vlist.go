// Package vlist is a windowed-rendering core for very large selectable lists.
// It decides which items must be live for a given scroll position, where the
// rendered block sits, and where a floating panel opens. It never decides
// what an item looks like. Hosts plug in node allocation, content binding and
// height measurement, and drive one Engine per list from their frame loop.
package vlist

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Range is a half-open item-index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether i falls inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
