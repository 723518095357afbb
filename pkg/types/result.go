// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "slices"

// Result maps each category to its question IDs, ascending and unique.
// A Result is built once per classification and never merged with another.
type Result struct {
	ids map[Category][]int
}

// NewResult builds a Result from per-category ID sets. Each set is sorted
// ascending; the input maps are not retained.
func NewResult(sets map[Category]map[int]struct{}) Result {
	ids := make(map[Category][]int, len(sets))
	for c, set := range sets {
		list := make([]int, 0, len(set))
		for id := range set {
			list = append(list, id)
		}
		slices.Sort(list)
		ids[c] = list
	}
	return Result{ids: ids}
}

// IDsFor returns a copy of the IDs recorded for c, sorted ascending.
// An unknown category or an empty one yields an empty, non-nil slice.
func (r Result) IDsFor(c Category) []int {
	list := r.ids[c]
	out := make([]int, len(list))
	copy(out, list)
	return out
}

// Count returns the number of unique IDs recorded for c.
func (r Result) Count(c Category) int {
	return len(r.ids[c])
}

// Total returns the number of IDs across all categories. An ID present in
// two categories counts twice.
func (r Result) Total() int {
	n := 0
	for _, list := range r.ids {
		n += len(list)
	}
	return n
}

// Empty reports whether no category holds any ID.
func (r Result) Empty() bool {
	return r.Total() == 0
}
