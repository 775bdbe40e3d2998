package omap

import (
	"fmt"
)

// Insertion is what the Insert* methods splice into a map: either one value
// that gets the next free integer key, or a block of entries that is inserted
// contiguously in its own order.
type Insertion[V any] struct {
	value  V
	block  *Map[V]
	single bool
}

// Single inserts one value under the next free integer key.
func Single[V any](v V) Insertion[V] {
	return Insertion[V]{value: v, single: true}
}

// Block inserts all entries of m, in order. A nil m inserts nothing.
func Block[V any](m *Map[V]) Insertion[V] {
	return Insertion[V]{block: m}
}

func (ins Insertion[V]) IsSingle() bool {
	return ins.single
}

// entries materializes the insertion against the map it is about to go into.
func (ins Insertion[V]) entries(into []Entry[V]) ([]Entry[V], error) {
	if ins.single {
		n, err := nextIndex(into)
		if err != nil {
			return nil, err
		}
		return []Entry[V]{{IntKey(n), ins.value}}, nil
	}
	if ins.block == nil {
		return nil, nil
	}
	return ins.block.Entries(), nil
}

type insertOptions struct {
	before       bool
	preserveKeys *bool
}

type InsertOption func(*insertOptions)

// Before makes InsertAtKey and InsertAtValue insert in front of the anchor
// instead of after it.
func Before() InsertOption {
	return func(o *insertOptions) {
		o.before = true
	}
}

// PreserveKeys chooses whether keys survive the insertion. When false, both
// the map and the insertion are renumbered 0..n-1.
func PreserveKeys(preserve bool) InsertOption {
	return func(o *insertOptions) {
		o.preserveKeys = &preserve
	}
}

func applyOptions(defaultPreserve bool, opts []InsertOption) (before, preserve bool) {
	var o insertOptions
	for _, opt := range opts {
		opt(&o)
	}
	preserve = defaultPreserve
	if o.preserveKeys != nil {
		preserve = *o.preserveKeys
	}
	return o.before, preserve
}

// FindOffsetByKey returns the offset of the first of the candidate keys that
// is present in the map. Candidates are tried in the given order.
func (m *Map[V]) FindOffsetByKey(candidates ...Key) (int, bool) {
	for _, k := range candidates {
		if i, ok := m.index[k]; ok {
			return i, true
		}
	}
	return 0, false
}

// FindOffsetByValue returns the offset of the first entry whose value is
// strictly equal to v.
func (m *Map[V]) FindOffsetByValue(v V) (int, bool) {
	for i, e := range m.entries {
		if StrictEqual(e.Value, v) {
			return i, true
		}
	}
	return 0, false
}

// InsertAtOffset splices ins into the map so that its first entry ends up at
// position offset; offset == Len() appends.
//
// Without preserveKeys the map and a block insertion lose their keys and the
// result is numbered 0..n-1.
//
// With preserveKeys, entries of the map whose keys also occur in the insertion
// are removed first, and the offset moves left once for every removed entry
// that was in front of it. The inserted entries then keep their keys.
//
// On error the map is left as it was.
func (m *Map[V]) InsertAtOffset(offset int, ins Insertion[V], preserveKeys bool) error {
	if offset < 0 || offset > m.Len() {
		return fmt.Errorf("%w: %d is outside [0, %d]", ErrInvalidOffset, offset, m.Len())
	}

	haystack := m.entries
	if !preserveKeys {
		haystack = renumber(haystack)
	}
	insertions, err := ins.entries(haystack)
	if err != nil {
		return err
	}
	if !preserveKeys {
		insertions = renumber(insertions)
	}

	if preserveKeys && len(insertions) > 0 {
		incoming := make(map[Key]struct{}, len(insertions))
		for _, e := range insertions {
			incoming[e.Key] = struct{}{}
		}
		kept := make([]Entry[V], 0, len(haystack))
		adjusted := offset
		for i, e := range haystack {
			if _, ok := incoming[e.Key]; ok {
				if i < offset {
					adjusted--
				}
				continue
			}
			kept = append(kept, e)
		}
		haystack, offset = kept, adjusted
	}

	result := make([]Entry[V], 0, len(haystack)+len(insertions))
	result = append(result, haystack[:offset]...)
	result = append(result, insertions...)
	result = append(result, haystack[offset:]...)
	if !preserveKeys {
		result = renumber(result)
	}
	m.replace(result)
	return nil
}

// InsertAtKey inserts ins right after the first anchor key present in the map,
// or right before it with Before(). Anchors are tried in order. Keys are
// preserved unless PreserveKeys(false) is given.
func (m *Map[V]) InsertAtKey(anchors []Key, ins Insertion[V], opts ...InsertOption) error {
	before, preserve := applyOptions(true, opts)
	offset, ok := m.FindOffsetByKey(anchors...)
	if !ok {
		return fmt.Errorf("%w: none of the keys %v", ErrAnchorNotFound, anchors)
	}
	if !before {
		offset++
	}
	return m.InsertAtOffset(offset, ins, preserve)
}

// InsertAtValue inserts ins right after the first entry strictly equal to
// anchor, or right before it with Before(). The result is renumbered unless
// PreserveKeys(true) is given.
func (m *Map[V]) InsertAtValue(anchor V, ins Insertion[V], opts ...InsertOption) error {
	before, preserve := applyOptions(false, opts)
	offset, ok := m.FindOffsetByValue(anchor)
	if !ok {
		return fmt.Errorf("%w: value %v", ErrAnchorNotFound, anchor)
	}
	if !before {
		offset++
	}
	return m.InsertAtOffset(offset, ins, preserve)
}
