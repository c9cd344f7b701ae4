package vlist

import (
	"math/rand"
	"testing"
)

type fakeNode struct {
	id     int
	bound  int
	resets int
}

func newFakePool() (*NodePool[*fakeNode], *int) {
	destroyed := 0
	next := 0
	p := NewNodePool(
		func() *fakeNode {
			next++
			return &fakeNode{id: next, bound: -1}
		},
		func(n *fakeNode) { n.bound = -1; n.resets++ },
		func(n *fakeNode) { destroyed++ },
	)
	return p, &destroyed
}

func TestNodePoolAcquireRelease(t *testing.T) {
	p, _ := newFakePool()
	p.SetItemCount(100)

	t.Run("acquire constructs when the free list is empty", func(t *testing.T) {
		n := p.Acquire(3)
		if n == nil || p.Allocs() != 1 {
			t.Fatalf("expected one construction, got %d", p.Allocs())
		}
		if got, ok := p.Live(3); !ok || got != n {
			t.Error("live mapping missing after acquire")
		}
	})

	t.Run("release recycles through the free list", func(t *testing.T) {
		p.lastSpan = 4 // ceiling 6, so the node is pooled not destroyed
		p.Release(3)
		if p.LiveCount() != 0 || p.FreeCount() != 1 {
			t.Fatalf("live=%d free=%d, want 0/1", p.LiveCount(), p.FreeCount())
		}
		n := p.Acquire(7)
		if p.Allocs() != 1 {
			t.Errorf("expected reuse, got %d constructions", p.Allocs())
		}
		if n.resets != 1 {
			t.Errorf("recycled node not reset (resets=%d)", n.resets)
		}
	})

	t.Run("panics", func(t *testing.T) {
		tests := []struct {
			name string
			call func()
		}{
			{"acquire out of range", func() { p.Acquire(100) }},
			{"acquire negative", func() { p.Acquire(-1) }},
			{"double acquire", func() { p.Acquire(7) }},
			{"release of non-live", func() { p.Release(50) }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				defer func() {
					if recover() == nil {
						t.Error("expected panic")
					}
				}()
				tt.call()
			})
		}
	})
}

func TestNodePoolReconcile(t *testing.T) {
	p, _ := newFakePool()
	p.SetItemCount(1000)

	t.Run("nodes come back in ascending index order", func(t *testing.T) {
		nodes := p.Reconcile(Range{Start: 10, End: 20})
		if len(nodes) != 10 {
			t.Fatalf("got %d nodes, want 10", len(nodes))
		}
		for i := 10; i < 20; i++ {
			n, ok := p.Live(i)
			if !ok {
				t.Fatalf("index %d not live", i)
			}
			if nodes[i-10] != n {
				t.Fatalf("nodes[%d] is not the node for index %d", i-10, i)
			}
		}
	})

	t.Run("scrolling one step recycles the departing node", func(t *testing.T) {
		allocs := p.Allocs()
		p.Reconcile(Range{Start: 11, End: 21})
		if p.Allocs() != allocs {
			t.Errorf("scroll step constructed %d new nodes", p.Allocs()-allocs)
		}
		if _, ok := p.Live(10); ok {
			t.Error("index 10 still live after leaving the window")
		}
	})

	t.Run("free list respects the 1.5x ceiling", func(t *testing.T) {
		p.Reconcile(Range{Start: 0, End: 40})
		p.Reconcile(Range{Start: 0, End: 4}) // span 4 -> ceiling 6
		if p.FreeCount() > 6 {
			t.Errorf("free list %d exceeds ceiling 6", p.FreeCount())
		}
	})

	t.Run("range out of bounds panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		p.Reconcile(Range{Start: 0, End: 1001})
	})
}

// After any reconcile the live set is exactly the requested range: the pool
// conservation property.
func TestNodePoolConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	p, destroyed := newFakePool()
	const n = 5000
	p.SetItemCount(n)

	for trial := 0; trial < 300; trial++ {
		start := rng.Intn(n)
		span := rng.Intn(60)
		r := Range{Start: start, End: min(start+span, n)}

		nodes := p.Reconcile(r)
		if len(nodes) != r.Len() {
			t.Fatalf("trial %d: %d nodes for range of %d", trial, len(nodes), r.Len())
		}
		if p.LiveCount() != r.Len() {
			t.Fatalf("trial %d: %d live nodes, want %d", trial, p.LiveCount(), r.Len())
		}
		for i := r.Start; i < r.End; i++ {
			if _, ok := p.Live(i); !ok {
				t.Fatalf("trial %d: index %d missing", trial, i)
			}
		}
		seen := make(map[*fakeNode]bool, len(nodes))
		for _, nd := range nodes {
			if seen[nd] {
				t.Fatalf("trial %d: node %d bound to two indices", trial, nd.id)
			}
			seen[nd] = true
		}
	}

	// Construction stays bounded by window churn, not dataset size, and the
	// ceiling keeps destroying true excess.
	if p.Allocs() >= n {
		t.Errorf("pool constructed %d nodes for windows of <60", p.Allocs())
	}
	if *destroyed == 0 {
		t.Error("ceiling never destroyed an excess node despite shrinking windows")
	}
}
