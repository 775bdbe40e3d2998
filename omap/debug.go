package omap

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"
)

type debugEntry struct {
	Key   string
	Value any
}

func (m *Map[V]) debugEntries() []debugEntry {
	entries := m.Entries()
	out := make([]debugEntry, len(entries))
	for i, e := range entries {
		var v any = e.Value
		if sub, ok := v.(*Map[any]); ok && sub != nil {
			v = sub.debugEntries()
		}
		out[i] = debugEntry{e.Key.String(), v}
	}
	return out
}

// GoString dumps the entries for %#v, one per line.
func (m *Map[V]) GoString() string {
	return pretty.Sprintf("%# v", m.debugEntries())
}

func (m *Map[V]) String() string {
	var buf strings.Builder
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%v: %v", e.Key, e.Value)
	}
	buf.WriteByte('}')
	return buf.String()
}
