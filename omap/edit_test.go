package omap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenameKey(t *testing.T) {
	for _, tc := range []struct {
		name     string
		from, to Key
		want     *Map[any]
	}{
		{"keeps position", StringKey("b"), StringKey("x"), kv("a", 1, "x", 2, "c", 3)},
		{"to integer key", StringKey("a"), IntKey(0), kv(0, 1, "b", 2, "c", 3)},
		{"overwrites later key", StringKey("a"), StringKey("c"), kv("c", 1, "b", 2)},
		{"overwrites earlier key", StringKey("c"), StringKey("a"), kv("b", 2, "a", 3)},
		{"to itself", StringKey("b"), StringKey("b"), kv("a", 1, "b", 2, "c", 3)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := kv("a", 1, "b", 2, "c", 3)
			require.NoError(t, m.RenameKey(tc.from, tc.to))
			requireMap(t, tc.want, m)
		})
	}
}

func TestRenameKeyKeepsIndexConsistent(t *testing.T) {
	req := require.New(t)
	m := kv("a", 1, "b", 2, "c", 3)
	req.NoError(m.RenameKey(StringKey("c"), StringKey("a")))

	req.False(m.Has(StringKey("c")))
	v, ok := m.Get(StringKey("a"))
	req.True(ok)
	req.Equal(3, v)
	i, _ := m.OffsetOf(StringKey("a"))
	req.Equal(1, i)
}

func TestRenameKeyNotFound(t *testing.T) {
	m := kv("a", 1, 2, 2)
	err := m.RenameKey(StringKey("2"), StringKey("x"))
	require.ErrorIs(t, err, ErrKeyNotFound)
	requireMap(t, kv("a", 1, 2, 2), m)
}

func TestRemoveValuesFirstLooseMatch(t *testing.T) {
	m := FromValues[any](int64(0), "0", false, int64(1))
	m.RemoveValues(int64(0))
	requireKeys(t, m, 1, 2, 3)
	require.Equal(t, []any{"0", false, int64(1)}, m.Values())
}

func TestRemoveValues(t *testing.T) {
	for _, tc := range []struct {
		name   string
		start  *Map[any]
		remove []any
		want   *Map[any]
	}{
		{
			name:   "numeric string matches number",
			start:  FromValues[any](false, "1.0", int64(1)),
			remove: []any{int64(1)},
			want:   kv(0, false, 2, int64(1)),
		},
		{
			name:   "one removal per value",
			start:  FromValues[any]("a", "b", "a"),
			remove: []any{"a"},
			want:   kv(1, "b", 2, "a"),
		},
		{
			name:   "nil map is an empty map",
			start:  FromValues[any]("x", (*Map[any])(nil)),
			remove: []any{New[any]()},
			want:   kv(0, "x"),
		},
		{
			name:   "repeated value removes repeatedly",
			start:  FromValues[any]("a", "b", "a"),
			remove: []any{"a", "a"},
			want:   kv(1, "b"),
		},
		{
			name:   "absent values are ignored",
			start:  kv("x", "a"),
			remove: []any{"zz", nil},
			want:   kv("x", "a"),
		},
		{
			name:   "non-numeric string does not match zero",
			start:  FromValues[any](int64(0)),
			remove: []any{"abc"},
			want:   kv(0, int64(0)),
		},
		{
			name:   "nil matches empty string",
			start:  kv("k", "", "l", "x"),
			remove: []any{nil},
			want:   kv("l", "x"),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tc.start.RemoveValues(tc.remove...)
			requireMap(t, tc.want, tc.start)
		})
	}
}
