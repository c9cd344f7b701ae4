package vlist

// Selection answers multi-select range queries over the same Fenwick
// machinery the OffsetIndex uses, with membership (0/1) as the payload
// instead of height deltas. CountRange is O(log n) regardless of how many
// items are selected.
type Selection struct {
	tree     *fenwick[int]
	selected []bool
	count    int
}

// NewSelection creates an empty selection over count items.
func NewSelection(count int) *Selection {
	if count < 0 {
		panic("vlist: item count must be non-negative")
	}
	return &Selection{
		tree:     newFenwick[int](count),
		selected: make([]bool, count),
	}
}

// Len returns the number of items the selection spans.
func (s *Selection) Len() int {
	return s.tree.len()
}

// Count returns the number of selected items.
func (s *Selection) Count() int {
	return s.count
}

// Selected reports whether item i is selected.
func (s *Selection) Selected(i int) bool {
	if i < 0 || i >= s.Len() {
		panic("vlist: selection index out of range")
	}
	return s.selected[i]
}

// Select marks item i selected. Selecting an already selected item is a
// no-op.
func (s *Selection) Select(i int) {
	if i < 0 || i >= s.Len() {
		panic("vlist: selection index out of range")
	}
	if s.selected[i] {
		return
	}
	s.selected[i] = true
	s.count++
	s.tree.add(i, 1)
}

// Deselect clears item i. Deselecting an unselected item is a no-op.
func (s *Selection) Deselect(i int) {
	if i < 0 || i >= s.Len() {
		panic("vlist: selection index out of range")
	}
	if !s.selected[i] {
		return
	}
	s.selected[i] = false
	s.count--
	s.tree.add(i, -1)
}

// Toggle flips item i and returns its new state.
func (s *Selection) Toggle(i int) bool {
	if s.Selected(i) {
		s.Deselect(i)
		return false
	}
	s.Select(i)
	return true
}

// CountRange returns how many items in [a, b], inclusive on both ends,
// are selected.
func (s *Selection) CountRange(a, b int) int {
	if b >= s.Len() {
		b = s.Len() - 1
	}
	return s.tree.rangeSum(a, b)
}

// Resize grows or shrinks the selection to count items. Trailing selections
// are dropped on shrink. O(n), for dataset replacement only.
func (s *Selection) Resize(count int) {
	if count < 0 {
		panic("vlist: item count must be non-negative")
	}
	if count == s.Len() {
		return
	}
	old := s.Len()
	if count < old {
		for i := count; i < old; i++ {
			if s.selected[i] {
				s.count--
			}
		}
		s.selected = s.selected[:count]
	} else {
		grown := make([]bool, count)
		copy(grown, s.selected)
		s.selected = grown
	}
	s.tree.resize(count)
}
