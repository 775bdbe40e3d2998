// Package omap implements an ordered map: a sequence of unique keys with
// values, where iteration order is significant and every key can be looked up
// in constant time.
//
// Besides the usual accessors the package provides positional edits that keep
// relative order intact: inserting a single value or a block of entries next
// to an anchor key, an anchor value or at a raw offset, renaming a key in
// place, removing entries by value, and stable sorting.
//
// A Map is not safe for concurrent use.
package omap

import (
	"fmt"
	"math"
)

type Entry[V any] struct {
	Key   Key
	Value V
}

type Map[V any] struct {
	entries []Entry[V]
	index   map[Key]int
}

func New[V any]() *Map[V] {
	return &Map[V]{
		entries: make([]Entry[V], 0),
		index:   make(map[Key]int),
	}
}

// FromEntries builds a map from entries in order. A later entry with a key
// seen before replaces the earlier value in place.
func FromEntries[V any](entries ...Entry[V]) *Map[V] {
	m := New[V]()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// FromValues builds a list-like map keyed 0..n-1.
func FromValues[V any](values ...V) *Map[V] {
	m := &Map[V]{
		entries: make([]Entry[V], len(values)),
		index:   make(map[Key]int, len(values)),
	}
	for i, v := range values {
		k := IntKey(int64(i))
		m.entries[i] = Entry[V]{k, v}
		m.index[k] = i
	}
	return m
}

func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

func (m *Map[V]) Has(k Key) bool {
	_, ok := m.index[k]
	return ok
}

func (m *Map[V]) Get(k Key) (V, bool) {
	i, ok := m.index[k]
	if ok {
		return m.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Set updates the value of an existing key without moving it, or appends a new
// entry at the end.
func (m *Map[V]) Set(k Key, v V) {
	if m.index == nil {
		m.index = make(map[Key]int)
	}
	if i, ok := m.index[k]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, Entry[V]{k, v})
}

// Append adds v at the end under NextIndex and returns the key it got.
func (m *Map[V]) Append(v V) (Key, error) {
	n, err := m.NextIndex()
	if err != nil {
		return Key{}, err
	}
	k := IntKey(n)
	m.Set(k, v)
	return k, nil
}

// Delete removes k and reports whether it was present.
func (m *Map[V]) Delete(k Key) bool {
	i, ok := m.index[k]
	if !ok {
		return false
	}
	m.removeAt(i)
	return true
}

func (m *Map[V]) removeAt(i int) {
	delete(m.index, m.entries[i].Key)
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].Key] = j
	}
}

// At returns the entry at offset i.
func (m *Map[V]) At(i int) (Entry[V], bool) {
	if i < 0 || i >= m.Len() {
		return Entry[V]{}, false
	}
	return m.entries[i], true
}

// OffsetOf returns the position of k in iteration order.
func (m *Map[V]) OffsetOf(k Key) (int, bool) {
	i, ok := m.index[k]
	return i, ok
}

func (m *Map[V]) Keys() []Key {
	keys := make([]Key, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

func (m *Map[V]) Values() []V {
	values := make([]V, len(m.entries))
	for i, e := range m.entries {
		values[i] = e.Value
	}
	return values
}

// Entries returns a copy of the entries in iteration order.
func (m *Map[V]) Entries() []Entry[V] {
	if m == nil {
		return nil
	}
	out := make([]Entry[V], len(m.entries))
	copy(out, m.entries)
	return out
}

// Each calls cb for every entry in order until cb returns false.
func (m *Map[V]) Each(cb func(k Key, v V) bool) {
	for _, e := range m.entries {
		if !cb(e.Key, e.Value) {
			return
		}
	}
}

// Clone returns a shallow copy.
func (m *Map[V]) Clone() *Map[V] {
	c := &Map[V]{
		entries: make([]Entry[V], len(m.entries)),
		index:   make(map[Key]int, len(m.entries)),
	}
	copy(c.entries, m.entries)
	for k, i := range m.index {
		c.index[k] = i
	}
	return c
}

// NextIndex is the key a value appended without a key would get: one more than
// the largest integer key, or 0 when there are no integer keys. It fails with
// ErrIndexOverflow when the largest integer key is math.MaxInt64.
func (m *Map[V]) NextIndex() (int64, error) {
	return nextIndex(m.entries)
}

func nextIndex[V any](entries []Entry[V]) (int64, error) {
	var last int64
	found := false
	for _, e := range entries {
		if n, ok := e.Key.Int(); ok && (!found || n > last) {
			last, found = n, true
		}
	}
	if !found {
		return 0, nil
	}
	if last == math.MaxInt64 {
		return 0, fmt.Errorf("%w: largest key is %d", ErrIndexOverflow, last)
	}
	return last + 1, nil
}

// Reindex drops all keys and numbers the entries 0..n-1 in their current order.
func (m *Map[V]) Reindex() {
	m.replace(renumber(m.entries))
}

func renumber[V any](entries []Entry[V]) []Entry[V] {
	out := make([]Entry[V], len(entries))
	for i, e := range entries {
		out[i] = Entry[V]{IntKey(int64(i)), e.Value}
	}
	return out
}

// replace swaps in a complete new entry sequence and rebuilds the index.
func (m *Map[V]) replace(entries []Entry[V]) {
	index := make(map[Key]int, len(entries))
	for i, e := range entries {
		index[e.Key] = i
	}
	m.entries, m.index = entries, index
}

// Equal reports whether both maps hold the same keys in the same order with
// strictly equal values.
func (m *Map[V]) Equal(other *Map[V]) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i := 0; i < m.Len(); i++ {
		a, b := m.entries[i], other.entries[i]
		if a.Key != b.Key || !StrictEqual(a.Value, b.Value) {
			return false
		}
	}
	return true
}
