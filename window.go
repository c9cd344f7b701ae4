package vlist

// WindowState is the output of one window computation: the half-open index
// range that must be live and the pixel translation for the rendered block.
// The two fields are always replaced together as one value.
type WindowState struct {
	Range           Range
	ContainerOffset float64
}

// Windower computes which items must be materialized for a scroll position.
// It reads the OffsetIndex it is bound to and holds no other state, so a
// computation is a pure function of the index plus its arguments.
type Windower struct {
	index *OffsetIndex
}

// NewWindower binds a windower to an offset index. One list instance owns
// one windower and one index; they are never shared across lists.
func NewWindower(index *OffsetIndex) *Windower {
	return &Windower{index: index}
}

// ComputeWindow returns the window for the given scroll offset and viewport
// height. buffer extends the range on both sides to mask scroll pop-in; a
// buffer of at least 1 guarantees every partially visible item is included.
// Two index descends plus clamping, O(log n).
func (w *Windower) ComputeWindow(scrollOffset, viewportHeight float64, buffer int) WindowState {
	if viewportHeight < 0 {
		panic("vlist: viewport height must be non-negative")
	}
	if buffer < 0 {
		panic("vlist: buffer must be non-negative")
	}
	count := w.index.Len()
	if count == 0 {
		return WindowState{}
	}

	start := w.index.IndexAtOffset(scrollOffset) - buffer
	end := w.index.IndexAtOffset(scrollOffset+viewportHeight) + buffer
	start = clampInt(start, 0, count)
	end = clampInt(end, start, count)

	return WindowState{
		Range:           Range{Start: start, End: end},
		ContainerOffset: w.index.CumulativeOffsetBefore(start),
	}
}
