package vlist

// OffsetIndex maps item indices to cumulative pixel offsets without summing
// heights item by item. Measured heights are stored as deltas against a base
// estimate in a Fenwick tree, so unmeasured items cost nothing and both
// directions of the mapping are O(log n):
//
//	cum(i) = i*base + deltaTree.prefixSum(i-1)
//
// Two estimates are tracked. The base is what the tree's deltas were derived
// against and what unmeasured items are priced at; it only moves on Rebuild,
// which keeps every stored delta exact and every implied height non-negative.
// The running mean folds in each measurement as it arrives. Between rebuilds
// the base lags the running mean, so unmeasured items are priced slightly
// stale. That is the deliberate precision/performance tradeoff: re-basing on
// every measurement would cost O(n) each time. Callers batch Rebuild (the
// Engine does it every RebuildEvery measurements).
type OffsetIndex struct {
	deltas   *fenwick[float64]
	heights  []float64 // last measurement per item, valid where measured
	measured []bool    // height 0 is legal, so presence is tracked separately

	base          float64 // estimate the deltas are derived against
	measuredSum   float64
	measuredCount int

	sinceRebuild int
}

// NewOffsetIndex creates an index over count items, all unmeasured, using
// estimate as the assumed height. Panics if count or estimate is negative.
func NewOffsetIndex(count int, estimate float64) *OffsetIndex {
	if count < 0 {
		panic("vlist: item count must be non-negative")
	}
	if estimate < 0 {
		panic("vlist: height estimate must be non-negative")
	}
	return &OffsetIndex{
		deltas:   newFenwick[float64](count),
		heights:  make([]float64, count),
		measured: make([]bool, count),
		base:     estimate,
	}
}

// Len returns the number of indexed items.
func (x *OffsetIndex) Len() int {
	return x.deltas.len()
}

// EstimatedHeight returns the height assumed for unmeasured items: the base
// estimate the delta tree is derived against.
func (x *OffsetIndex) EstimatedHeight() float64 {
	return x.base
}

// MeanMeasuredHeight returns the running mean of all measurements so far,
// or the base estimate if nothing has been measured. Rebuild adopts this as
// the new base.
func (x *OffsetIndex) MeanMeasuredHeight() float64 {
	if x.measuredCount == 0 {
		return x.base
	}
	return x.measuredSum / float64(x.measuredCount)
}

// HeightAt returns item i's measured height, or the current estimate if the
// item has never been measured.
func (x *OffsetIndex) HeightAt(i int) float64 {
	if i < 0 || i >= x.Len() {
		panic("vlist: height index out of range")
	}
	if x.measured[i] {
		return x.heights[i]
	}
	return x.base
}

// Measured reports whether item i has ever reported a height. A measured
// height of zero is a collapsed item, not an unmeasured one.
func (x *OffsetIndex) Measured(i int) bool {
	if i < 0 || i >= x.Len() {
		panic("vlist: height index out of range")
	}
	return x.measured[i]
}

// CumulativeOffsetBefore returns the pixel offset of item i's top edge.
// i may equal Len(), in which case the total content height is returned.
func (x *OffsetIndex) CumulativeOffsetBefore(i int) float64 {
	if i < 0 || i > x.Len() {
		panic("vlist: offset index out of range")
	}
	return float64(i)*x.base + x.deltas.prefixSum(i-1)
}

// TotalHeight returns the full content height.
func (x *OffsetIndex) TotalHeight() float64 {
	return x.CumulativeOffsetBefore(x.Len())
}

// IndexAtOffset returns the item whose half-open interval
// [cum(i), cum(i+1)) contains pixel offset y. Offsets below zero resolve to
// the first item, offsets at or past the total height to the last. A single
// top-down Fenwick descend, O(log n).
func (x *OffsetIndex) IndexAtOffset(y float64) int {
	n := x.Len()
	if n == 0 {
		return 0
	}
	// Walk power-of-two blocks, keeping the largest pos with cum(pos) <= y.
	// Zero-height runs share a cumulative offset, and taking the largest
	// such pos lands on the item whose interval actually contains y.
	mask := 1
	for mask<<1 <= n {
		mask <<= 1
	}
	pos := 0
	acc := 0.0
	for ; mask > 0; mask >>= 1 {
		next := pos + mask
		if next > n {
			continue
		}
		if acc+x.deltas.tree[next]+float64(next)*x.base <= y {
			pos = next
			acc += x.deltas.tree[next]
		}
	}
	return clampInt(pos, 0, n-1)
}

// RecordMeasurement stores a measured height for item i and folds it into
// the running mean. O(log n). Panics on a negative or NaN height or an index
// out of range, since a silent clamp here would corrupt every offset
// downstream.
func (x *OffsetIndex) RecordMeasurement(i int, h float64) {
	if i < 0 || i >= x.Len() {
		panic("vlist: measurement index out of range")
	}
	if h < 0 || h != h {
		panic("vlist: measured height must be a non-negative number")
	}

	delta := h - x.base
	current := x.deltas.rangeSum(i, i)
	x.deltas.add(i, delta-current)

	if x.measured[i] {
		// Re-measurement replaces the previous sample in the mean.
		x.measuredSum += h - x.heights[i]
	} else {
		x.measured[i] = true
		x.measuredCount++
		x.measuredSum += h
	}
	x.heights[i] = h
	x.sinceRebuild++
}

// MeasurementsSinceRebuild returns how many measurements have been recorded
// since the deltas were last re-based. Callers use it to batch Rebuild.
func (x *OffsetIndex) MeasurementsSinceRebuild() int {
	return x.sinceRebuild
}

// Rebuild adopts the running mean as the new base and re-derives every delta
// against it. O(n); callers schedule it outside the hot path.
func (x *OffsetIndex) Rebuild() {
	x.base = x.MeanMeasuredHeight()
	vals := make([]float64, x.Len())
	for i := range vals {
		if x.measured[i] {
			vals[i] = x.heights[i] - x.base
		}
	}
	x.deltas.rebuild(vals)
	x.sinceRebuild = 0
}

// Resize grows or shrinks the index to newCount items. Growing appends
// unmeasured items; shrinking drops trailing items and their measurements.
// O(n), for dataset replacement only, never per-frame. Panics on a negative
// count.
func (x *OffsetIndex) Resize(newCount int) {
	if newCount < 0 {
		panic("vlist: item count must be non-negative")
	}
	if newCount == x.Len() {
		return
	}
	old := x.Len()
	if newCount < old {
		for i := newCount; i < old; i++ {
			if x.measured[i] {
				x.measuredSum -= x.heights[i]
				x.measuredCount--
			}
		}
		x.heights = x.heights[:newCount]
		x.measured = x.measured[:newCount]
	} else {
		heights := make([]float64, newCount)
		copy(heights, x.heights)
		x.heights = heights
		measured := make([]bool, newCount)
		copy(measured, x.measured)
		x.measured = measured
	}
	x.deltas.resize(newCount)
	// Resize is a linear pass already, so re-base while we're here rather
	// than carrying deltas for a differently sized dataset.
	x.Rebuild()
}
