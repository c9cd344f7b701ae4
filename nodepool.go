package vlist

// NodePool recycles render-node handles so the number of live nodes tracks
// the window size, not the dataset size. Nodes are opaque to the pool: the
// host supplies construction and teardown, and rebinds content itself when a
// recycled node comes back from Acquire. A node's identity never implies item
// identity across frames.
type NodePool[N any] struct {
	alloc   func() N
	reset   func(N) // optional, run when a node enters the free list
	destroy func(N) // optional, run when a node is dropped for good

	live      map[int]N
	free      []N
	itemCount int
	lastSpan  int // window span of the last reconcile, caps the free list

	ordered []N // scratch for Reconcile's ascending output
	allocs  int
}

// NewNodePool creates a pool. alloc constructs a fresh node and must not be
// nil. reset and destroy may be nil.
func NewNodePool[N any](alloc func() N, reset, destroy func(N)) *NodePool[N] {
	if alloc == nil {
		panic("vlist: node pool needs an alloc func")
	}
	return &NodePool[N]{
		alloc:   alloc,
		reset:   reset,
		destroy: destroy,
		live:    make(map[int]N),
	}
}

// SetItemCount sets the valid index bound for Acquire. The owning engine
// calls this on every dataset resize.
func (p *NodePool[N]) SetItemCount(count int) {
	if count < 0 {
		panic("vlist: item count must be non-negative")
	}
	p.itemCount = count
}

// Live returns the node bound to index i, if any.
func (p *NodePool[N]) Live(i int) (N, bool) {
	n, ok := p.live[i]
	return n, ok
}

// LiveCount returns the number of currently bound nodes.
func (p *NodePool[N]) LiveCount() int {
	return len(p.live)
}

// FreeCount returns the number of pooled detached nodes.
func (p *NodePool[N]) FreeCount() int {
	return len(p.free)
}

// Allocs returns how many nodes the pool has constructed in total.
func (p *NodePool[N]) Allocs() int {
	return p.allocs
}

// Acquire returns a node for item i, preferring a recycled one. Panics if i
// is outside [0, itemCount) or already has a live node; both indicate the
// caller lost track of the window.
func (p *NodePool[N]) Acquire(i int) N {
	if i < 0 || i >= p.itemCount {
		panic("vlist: acquire index out of range")
	}
	if _, ok := p.live[i]; ok {
		panic("vlist: acquire of an index that is already live")
	}
	var n N
	if last := len(p.free) - 1; last >= 0 {
		n = p.free[last]
		var zero N
		p.free[last] = zero
		p.free = p.free[:last]
	} else {
		n = p.alloc()
		p.allocs++
	}
	p.live[i] = n
	return n
}

// Release detaches the node for item i and returns it to the free list, or
// destroys it if the free list is at its ceiling. Panics if i has no live
// node.
func (p *NodePool[N]) Release(i int) {
	n, ok := p.live[i]
	if !ok {
		panic("vlist: release of an index that is not live")
	}
	delete(p.live, i)
	p.retire(n)
}

func (p *NodePool[N]) retire(n N) {
	if p.reset != nil {
		p.reset(n)
	}
	if len(p.free) >= p.freeCeiling() {
		if p.destroy != nil {
			p.destroy(n)
		}
		return
	}
	p.free = append(p.free, n)
}

// freeCeiling bounds pooled nodes at 1.5x the last window span, so a burst
// of viewport growth and shrink cannot pin memory forever.
func (p *NodePool[N]) freeCeiling() int {
	return p.lastSpan + p.lastSpan/2
}

// Reconcile moves the pool from its current live set to exactly newRange:
// indices leaving the window are released, indices entering it acquire a
// node. The returned slice holds the live nodes in ascending index order and
// is reused across calls, so read it before the next Reconcile.
func (p *NodePool[N]) Reconcile(newRange Range) []N {
	if newRange.Start < 0 || newRange.End < newRange.Start || newRange.End > p.itemCount {
		panic("vlist: reconcile range out of bounds")
	}
	p.lastSpan = newRange.Len()

	// A shrinking window lowers the ceiling; drop pooled nodes that no
	// longer fit under it.
	for len(p.free) > p.freeCeiling() {
		last := len(p.free) - 1
		n := p.free[last]
		var zero N
		p.free[last] = zero
		p.free = p.free[:last]
		if p.destroy != nil {
			p.destroy(n)
		}
	}

	for i := range p.live {
		if !newRange.Contains(i) {
			n := p.live[i]
			delete(p.live, i)
			p.retire(n)
		}
	}

	p.ordered = p.ordered[:0]
	for i := newRange.Start; i < newRange.End; i++ {
		n, ok := p.live[i]
		if !ok {
			n = p.Acquire(i)
		}
		p.ordered = append(p.ordered, n)
	}
	return p.ordered
}
