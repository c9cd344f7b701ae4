package vlist

// summable covers the two payloads the package indexes: pixel-height deltas
// (float64) and selection membership (int).
type summable interface {
	~int | ~int64 | ~float64
}

// fenwick is a binary-indexed tree over n values. Point updates and prefix
// sums are O(log n). The tree array is 1-based; position 0 is unused.
type fenwick[T summable] struct {
	tree []T
	n    int
}

func newFenwick[T summable](n int) *fenwick[T] {
	if n < 0 {
		panic("vlist: fenwick size must be non-negative")
	}
	return &fenwick[T]{tree: make([]T, n+1), n: n}
}

// len returns the number of indexed positions.
func (f *fenwick[T]) len() int {
	return f.n
}

// add adds v to position i. O(log n).
func (f *fenwick[T]) add(i int, v T) {
	if i < 0 || i >= f.n {
		panic("vlist: fenwick index out of range")
	}
	for j := i + 1; j <= f.n; j += j & -j {
		f.tree[j] += v
	}
}

// prefixSum returns the sum of positions [0, i]. An i of -1 yields zero.
// O(log n).
func (f *fenwick[T]) prefixSum(i int) T {
	if i >= f.n {
		i = f.n - 1
	}
	var s T
	for j := i + 1; j > 0; j -= j & -j {
		s += f.tree[j]
	}
	return s
}

// rangeSum returns the sum of positions [a, b], inclusive on both ends.
func (f *fenwick[T]) rangeSum(a, b int) T {
	if a > b {
		return 0
	}
	if a < 0 {
		a = 0
	}
	return f.prefixSum(b) - f.prefixSum(a-1)
}

// resize grows or shrinks the tree to n positions. Growing zero-fills; the
// sums over surviving positions are preserved. Shrinking drops trailing
// positions. O(n), for dataset replacement only, never per-frame.
func (f *fenwick[T]) resize(n int) {
	if n < 0 {
		panic("vlist: fenwick size must be non-negative")
	}
	if n == f.n {
		return
	}
	// Recover point values, then rebuild at the new size. Simpler than
	// patching internal nodes and still one linear pass.
	vals := f.values()
	if n < len(vals) {
		vals = vals[:n]
	} else {
		grown := make([]T, n)
		copy(grown, vals)
		vals = grown
	}
	f.n = n
	f.tree = make([]T, n+1)
	f.rebuild(vals)
}

// rebuild bulk-loads vals, replacing all current content. len(vals) must
// equal the tree size. O(n).
func (f *fenwick[T]) rebuild(vals []T) {
	if len(vals) != f.n {
		panic("vlist: fenwick rebuild length mismatch")
	}
	for i := range f.tree {
		f.tree[i] = 0
	}
	for i, v := range vals {
		j := i + 1
		f.tree[j] += v
		if p := j + (j & -j); p <= f.n {
			f.tree[p] += f.tree[j]
		}
	}
}

// values reconstructs the point values in one O(n) pass.
func (f *fenwick[T]) values() []T {
	vals := make([]T, f.n)
	for i := range vals {
		j := i + 1
		vals[i] = f.tree[j]
		// Subtract child blocks that were folded into node j.
		lsb := j & -j
		for k := j - 1; k > j-lsb; k -= k & -k {
			vals[i] -= f.tree[k]
		}
	}
	return vals
}
