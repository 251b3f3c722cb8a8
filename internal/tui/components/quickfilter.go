package components

import (
	"github.com/sahilm/fuzzy"
)

// QuickFilter narrows an already-loaded list by fuzzy-matching against the
// entries' display names. It never touches the network; the full list stays
// resident and an empty pattern restores it.
type QuickFilter struct {
	pattern string
	names   []string
	matched []int
}

// SetSource replaces the filterable names and re-applies the current pattern
func (q *QuickFilter) SetSource(names []string) {
	q.names = names
	q.apply()
}

// SetPattern updates the filter pattern and recomputes matches
func (q *QuickFilter) SetPattern(pattern string) {
	if pattern == q.pattern {
		return
	}
	q.pattern = pattern
	q.apply()
}

// Pattern returns the active pattern
func (q QuickFilter) Pattern() string {
	return q.pattern
}

// Active reports whether a non-empty pattern is applied
func (q QuickFilter) Active() bool {
	return q.pattern != ""
}

// Indexes returns the source indexes that survive the filter, ranked by
// match quality. With no pattern it returns every index in source order.
func (q QuickFilter) Indexes() []int {
	return q.matched
}

// Len returns the number of surviving entries
func (q QuickFilter) Len() int {
	return len(q.matched)
}

func (q *QuickFilter) apply() {
	if q.pattern == "" {
		q.matched = make([]int, len(q.names))
		for i := range q.names {
			q.matched[i] = i
		}
		return
	}
	matches := fuzzy.Find(q.pattern, q.names)
	q.matched = make([]int, 0, len(matches))
	for _, m := range matches {
		q.matched = append(q.matched, m.Index)
	}
}
