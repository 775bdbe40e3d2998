package omap

import "slices"

type ranked[V any] struct {
	pos   int
	entry Entry[V]
}

// stableSort orders entries by cmp on their values. slices.SortFunc makes no
// stability promise, so ties fall back to the original position.
func stableSort[V any](entries []Entry[V], cmp func(a, b V) int) []Entry[V] {
	decorated := make([]ranked[V], len(entries))
	for i, e := range entries {
		decorated[i] = ranked[V]{i, e}
	}
	slices.SortFunc(decorated, func(a, b ranked[V]) int {
		if c := cmp(a.entry.Value, b.entry.Value); c != 0 {
			return c
		}
		return a.pos - b.pos
	})
	out := make([]Entry[V], len(decorated))
	for i, d := range decorated {
		out[i] = d.entry
	}
	return out
}

// StableSort sorts the values by cmp, keeping equal values in their current
// relative order, and renumbers the keys 0..n-1. It reports success, which is
// always true.
func (m *Map[V]) StableSort(cmp func(a, b V) int) bool {
	m.replace(renumber(stableSort(m.entries, cmp)))
	return true
}

// StableSortPreservingKeys is StableSort that keeps every value under its key.
func (m *Map[V]) StableSortPreservingKeys(cmp func(a, b V) int) bool {
	m.replace(stableSort(m.entries, cmp))
	return true
}

// SortKeys orders entries by key with CompareKeys. Keys are unique, so there
// are no ties to keep stable.
func (m *Map[V]) SortKeys() {
	entries := m.Entries()
	slices.SortFunc(entries, func(a, b Entry[V]) int {
		return CompareKeys(a.Key, b.Key)
	})
	m.replace(entries)
}
