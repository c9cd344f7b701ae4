package vlist

import (
	"math/rand"
	"testing"
)

func TestFenwickBasics(t *testing.T) {
	t.Run("empty tree", func(t *testing.T) {
		f := newFenwick[int](0)
		if f.len() != 0 {
			t.Fatalf("expected len 0, got %d", f.len())
		}
		if got := f.prefixSum(5); got != 0 {
			t.Errorf("prefixSum on empty tree = %d, want 0", got)
		}
	})

	t.Run("point updates and prefix sums", func(t *testing.T) {
		f := newFenwick[int](10)
		f.add(0, 3)
		f.add(4, 7)
		f.add(9, 1)

		tests := []struct {
			i    int
			want int
		}{
			{-1, 0},
			{0, 3},
			{3, 3},
			{4, 10},
			{8, 10},
			{9, 11},
			{99, 11}, // past the end clamps to the total
		}
		for _, tt := range tests {
			if got := f.prefixSum(tt.i); got != tt.want {
				t.Errorf("prefixSum(%d) = %d, want %d", tt.i, got, tt.want)
			}
		}
	})

	t.Run("rangeSum is inclusive", func(t *testing.T) {
		f := newFenwick[int](6)
		for i := 0; i < 6; i++ {
			f.add(i, i)
		}
		if got := f.rangeSum(1, 3); got != 6 {
			t.Errorf("rangeSum(1,3) = %d, want 6", got)
		}
		if got := f.rangeSum(0, 5); got != 15 {
			t.Errorf("rangeSum(0,5) = %d, want 15", got)
		}
		if got := f.rangeSum(4, 2); got != 0 {
			t.Errorf("rangeSum(4,2) = %d, want 0", got)
		}
	})

	t.Run("add out of range panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		newFenwick[int](3).add(3, 1)
	})
}

func TestFenwickAgainstNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 257 // off a power of two on purpose

	f := newFenwick[float64](n)
	naive := make([]float64, n)

	for step := 0; step < 2000; step++ {
		i := rng.Intn(n)
		v := rng.Float64()*20 - 10
		f.add(i, v)
		naive[i] += v

		probe := rng.Intn(n)
		want := 0.0
		for j := 0; j <= probe; j++ {
			want += naive[j]
		}
		if got := f.prefixSum(probe); !almostEqual(got, want) {
			t.Fatalf("step %d: prefixSum(%d) = %v, want %v", step, probe, got, want)
		}
	}

	vals := f.values()
	for i := range naive {
		if !almostEqual(vals[i], naive[i]) {
			t.Fatalf("values()[%d] = %v, want %v", i, vals[i], naive[i])
		}
	}
}

func TestFenwickResize(t *testing.T) {
	t.Run("grow preserves and zero-fills", func(t *testing.T) {
		f := newFenwick[int](4)
		for i := 0; i < 4; i++ {
			f.add(i, i+1)
		}
		f.resize(8)
		if got := f.prefixSum(3); got != 10 {
			t.Errorf("prefixSum(3) after grow = %d, want 10", got)
		}
		if got := f.prefixSum(7); got != 10 {
			t.Errorf("prefixSum(7) after grow = %d, want 10", got)
		}
		f.add(7, 5)
		if got := f.prefixSum(7); got != 15 {
			t.Errorf("prefixSum(7) = %d, want 15", got)
		}
	})

	t.Run("shrink drops trailing", func(t *testing.T) {
		f := newFenwick[int](8)
		for i := 0; i < 8; i++ {
			f.add(i, 1)
		}
		f.resize(3)
		if f.len() != 3 {
			t.Fatalf("len = %d, want 3", f.len())
		}
		if got := f.prefixSum(2); got != 3 {
			t.Errorf("prefixSum(2) = %d, want 3", got)
		}
	})

	t.Run("rebuild replaces content", func(t *testing.T) {
		f := newFenwick[float64](5)
		f.add(2, 99)
		f.rebuild([]float64{1, 2, 3, 4, 5})
		if got := f.prefixSum(4); !almostEqual(got, 15) {
			t.Errorf("prefixSum(4) = %v, want 15", got)
		}
		if got := f.rangeSum(2, 2); !almostEqual(got, 3) {
			t.Errorf("rangeSum(2,2) = %v, want 3", got)
		}
	})
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}
