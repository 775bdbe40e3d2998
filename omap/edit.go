package omap

import "fmt"

// RenameKey relabels the entry at oldKey as newKey without moving it. Another
// entry already labelled newKey is removed, and its value is lost. Renaming a
// key to itself does nothing.
func (m *Map[V]) RenameKey(oldKey, newKey Key) error {
	i, ok := m.index[oldKey]
	if !ok {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, oldKey)
	}
	if oldKey == newKey {
		return nil
	}
	if j, ok := m.index[newKey]; ok {
		m.removeAt(j)
		if j < i {
			i--
		}
	}
	delete(m.index, oldKey)
	m.entries[i].Key = newKey
	m.index[newKey] = i
	return nil
}

// RemoveValues removes, for each of the given values, the first entry whose
// value is loosely equal to it (see LooseEqual). Values that match nothing are
// ignored.
func (m *Map[V]) RemoveValues(values ...V) {
	for _, v := range values {
		for i, e := range m.entries {
			if LooseEqual(e.Value, v) {
				m.removeAt(i)
				break
			}
		}
	}
}
