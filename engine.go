package vlist

// Config tunes one Engine. The zero value is usable; withDefaults fills the
// gaps.
type Config struct {
	// Buffer is how many extra items are kept live on each side of the
	// visible range to mask scroll pop-in. Keep it at 1 or more so a
	// partially visible last row is always covered.
	Buffer int

	// EstimatedHeight seeds the offset index before any item has been
	// measured.
	EstimatedHeight float64

	// RebuildEvery is the number of recorded measurements between full
	// re-bases of the offset index. Lower keeps the estimate for unmeasured
	// items fresher, higher is cheaper. 0 means the default of 256; a
	// negative value disables scheduled rebuilds entirely.
	RebuildEvery int

	// PageSize enables pagination signalling when non-zero: LoadMore fires
	// with page = itemCount/PageSize once the window nears the end.
	PageSize int

	// LoadThreshold is how many items from the end the window may get
	// before LoadMore fires. Defaults to twice Buffer.
	LoadThreshold int
}

func (c Config) withDefaults() Config {
	if c.Buffer <= 0 {
		c.Buffer = 5
	}
	if c.EstimatedHeight <= 0 {
		c.EstimatedHeight = 32
	}
	if c.RebuildEvery == 0 {
		c.RebuildEvery = 256
	} else if c.RebuildEvery < 0 {
		c.RebuildEvery = 0
	}
	if c.LoadThreshold <= 0 {
		c.LoadThreshold = 2 * c.Buffer
	}
	return c
}

// Engine composes one OffsetIndex, Windower, NodePool and Selection into the
// per-frame pass a host drives from its animation tick:
//
//	measure live nodes → feed measurements → rebuild if due →
//	recompute window → reconcile pool → emit events
//
// One list instance owns one Engine; nothing here is shared or locked. All
// entry points run on the host's single frame context, and scroll/viewport
// input is coalesced so the tick only ever acts on the most recent values;
// a backlog of stale scroll positions is never replayed.
type Engine[N any] struct {
	// Host hooks. Alloc constructs a node shell, Bind puts item content
	// into a (possibly recycled) node, Measure reads a node's laid-out
	// height, where false means not laid out yet, which is not an error.
	// Destroy is optional teardown for nodes the pool drops.
	Alloc   func() N
	Bind    func(n N, index int)
	Measure func(n N) (float64, bool)
	Destroy func(n N)

	// Events, all optional.
	WindowChanged     func(WindowState)
	LoadMore          func(page int)
	PlacementResolved func(Position)

	cfg      Config
	index    *OffsetIndex
	windower *Windower
	pool     *NodePool[N]
	sel      *Selection

	scroll   float64
	viewport float64
	dirty    bool

	window        WindowState
	lastLoadPage  int
	loadRequested bool
}

// NewEngine creates an engine over count items. The Alloc, Bind and Measure
// hooks must be assigned before the first Tick.
func NewEngine[N any](count int, cfg Config) *Engine[N] {
	if count < 0 {
		panic("vlist: item count must be non-negative")
	}
	cfg = cfg.withDefaults()
	e := &Engine[N]{
		cfg:   cfg,
		index: NewOffsetIndex(count, cfg.EstimatedHeight),
		sel:   NewSelection(count),
		dirty: true,
	}
	e.windower = NewWindower(e.index)
	e.pool = NewNodePool(
		func() N { return e.Alloc() },
		nil,
		func(n N) {
			if e.Destroy != nil {
				e.Destroy(n)
			}
		},
	)
	e.pool.SetItemCount(count)
	return e
}

// Index exposes the offset index for direct queries (HeightAt,
// CumulativeOffsetBefore and friends).
func (e *Engine[N]) Index() *OffsetIndex {
	return e.index
}

// Selection exposes the selection tree.
func (e *Engine[N]) Selection() *Selection {
	return e.sel
}

// Pool exposes the node pool, mainly for stats.
func (e *Engine[N]) Pool() *NodePool[N] {
	return e.pool
}

// Window returns the window state of the last Tick.
func (e *Engine[N]) Window() WindowState {
	return e.window
}

// Scroll returns the latest scroll offset handed to SetScroll.
func (e *Engine[N]) Scroll() float64 {
	return e.scroll
}

// MaxScroll returns the largest useful scroll offset: total content height
// minus the viewport, floored at zero.
func (e *Engine[N]) MaxScroll() float64 {
	m := e.index.TotalHeight() - e.viewport
	if m < 0 {
		m = 0
	}
	return m
}

// SetScroll records a new scroll offset. Repeated calls within one frame
// coalesce; only the most recent value is acted on by Tick.
func (e *Engine[N]) SetScroll(y float64) {
	y = clampFloat(y, 0, e.MaxScroll())
	if y != e.scroll {
		e.scroll = y
		e.dirty = true
	}
}

// ScrollBy adjusts the scroll offset by delta pixels.
func (e *Engine[N]) ScrollBy(delta float64) {
	e.SetScroll(e.scroll + delta)
}

// SetViewport records a new viewport height. Coalesced like SetScroll.
func (e *Engine[N]) SetViewport(h float64) {
	if h < 0 {
		panic("vlist: viewport height must be non-negative")
	}
	if h != e.viewport {
		e.viewport = h
		e.dirty = true
	}
}

// ScrollToItem jumps so that item i's top edge lands at the top of the
// viewport, without walking any intermediate positions.
func (e *Engine[N]) ScrollToItem(i int) {
	if i < 0 || i >= e.index.Len() {
		panic("vlist: scroll target out of range")
	}
	e.SetScroll(e.index.CumulativeOffsetBefore(i))
}

// Resize replaces the dataset size after items were appended, removed or
// swapped out. O(n); called from the data path, never per-frame.
func (e *Engine[N]) Resize(newCount int) {
	e.index.Resize(newCount)
	e.sel.Resize(newCount)
	e.pool.SetItemCount(newCount)
	if newCount < e.window.Range.End {
		// The live window no longer fits the dataset; shrink it before
		// the next tick reconciles properly.
		e.window.Range.End = newCount
		if e.window.Range.Start > newCount {
			e.window.Range.Start = newCount
		}
		e.pool.Reconcile(e.window.Range)
	}
	e.loadRequested = false
	e.SetScroll(e.scroll)
	e.dirty = true
}

// Nodes returns the live nodes of the last reconcile in ascending index
// order. The slice is reused; read it before the next Tick.
func (e *Engine[N]) Nodes() []N {
	return e.pool.Reconcile(e.window.Range)
}

// Tick runs one frame pass against the most recent scroll and viewport
// input. It is synchronous, allocation-light, and safe to call every
// animation frame: when nothing changed and no node reported a new height,
// it returns false without recomputing anything.
func (e *Engine[N]) Tick() bool {
	fed := e.feedMeasurements()
	if !e.dirty && !fed {
		return false
	}
	e.dirty = false

	if k := e.cfg.RebuildEvery; k > 0 && e.index.MeasurementsSinceRebuild() >= k {
		e.index.Rebuild()
	}

	next := e.windower.ComputeWindow(e.scroll, e.viewport, e.cfg.Buffer)
	changed := next != e.window
	e.window = next

	nodes := e.pool.Reconcile(next.Range)
	if e.Bind != nil {
		for off, n := range nodes {
			e.Bind(n, next.Range.Start+off)
		}
	}

	if changed && e.WindowChanged != nil {
		e.WindowChanged(next)
	}
	e.maybeRequestLoad()
	return changed
}

// feedMeasurements reads the laid-out height of every live node and records
// the ones that changed. Runs before the window recompute so this frame's
// offsets already include last frame's layout.
func (e *Engine[N]) feedMeasurements() bool {
	if e.Measure == nil {
		return false
	}
	fed := false
	for i := e.window.Range.Start; i < e.window.Range.End; i++ {
		n, ok := e.pool.Live(i)
		if !ok {
			continue
		}
		h, ok := e.Measure(n)
		if !ok {
			continue
		}
		if e.index.measured[i] && e.index.heights[i] == h {
			continue
		}
		e.index.RecordMeasurement(i, h)
		fed = true
	}
	return fed
}

// maybeRequestLoad fires LoadMore once per page boundary when the window
// approaches the end of the known items.
func (e *Engine[N]) maybeRequestLoad() {
	if e.cfg.PageSize <= 0 || e.LoadMore == nil {
		return
	}
	count := e.index.Len()
	if e.window.Range.End < count-e.cfg.LoadThreshold {
		return
	}
	page := count / e.cfg.PageSize
	if e.loadRequested && page == e.lastLoadPage {
		return
	}
	e.loadRequested = true
	e.lastLoadPage = page
	e.LoadMore(page)
}

// PlacePanel runs the positioner for a floating panel anchored to part of
// this list (typically the open dropdown) and reports the result through
// PlacementResolved as well as returning it.
func (e *Engine[N]) PlacePanel(anchor, panel, boundary Rect, order []Placement, allowShift bool) Position {
	pos := Place(anchor, panel, boundary, order, allowShift)
	if e.PlacementResolved != nil {
		e.PlacementResolved(pos)
	}
	return pos
}
