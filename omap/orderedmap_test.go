package omap

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// kv builds a Map[any] from alternating keys and values. Go ints become integer
// keys, strings become string keys.
func kv(pairs ...any) *Map[any] {
	if len(pairs)%2 != 0 {
		panic("kv needs an even number of arguments")
	}
	m := New[any]()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(key(pairs[i]), pairs[i+1])
	}
	return m
}

func key(k any) Key {
	switch k := k.(type) {
	case int:
		return IntKey(int64(k))
	case string:
		return StringKey(k)
	}
	panic("unsupported key type")
}

func keys(ks ...any) []Key {
	out := make([]Key, len(ks))
	for i, k := range ks {
		out[i] = key(k)
	}
	return out
}

var keyComparer = cmp.Comparer(func(a, b Key) bool { return a == b })

func requireKeys(t *testing.T, m interface{ Keys() []Key }, want ...any) {
	t.Helper()
	if diff := cmp.Diff(keys(want...), m.Keys(), keyComparer); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMapSetGetDelete(t *testing.T) {
	req := require.New(t)
	m := New[string]()
	m.Set(StringKey("a"), "1")
	m.Set(IntKey(7), "2")
	m.Set(StringKey("b"), "3")
	m.Set(StringKey("a"), "updated")

	requireKeys(t, m, "a", 7, "b")
	v, ok := m.Get(StringKey("a"))
	req.True(ok)
	req.Equal("updated", v)

	_, ok = m.Get(StringKey("7"))
	req.False(ok, "string key must not match integer key")

	req.True(m.Delete(StringKey("a")))
	req.False(m.Delete(StringKey("a")))
	requireKeys(t, m, 7, "b")

	off, ok := m.OffsetOf(StringKey("b"))
	req.True(ok)
	req.Equal(1, off)
}

func TestMapZeroValueIsUsable(t *testing.T) {
	var m Map[int]
	m.Set(StringKey("x"), 1)
	require.Equal(t, 1, m.Len())
}

func TestMapNextIndex(t *testing.T) {
	for _, tc := range []struct {
		name string
		m    *Map[any]
		want int64
	}{
		{"empty", New[any](), 0},
		{"string keys only", kv("a", 1, "b", 2), 0},
		{"dense", kv(0, "a", 1, "b"), 2},
		{"sparse", kv(5, "a", "x", 1, 2, "b"), 6},
		{"negative only", kv(-5, "a"), -4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			n, err := tc.m.NextIndex()
			require.NoError(t, err)
			require.Equal(t, tc.want, n)
		})
	}
}

func TestMapNextIndexOverflow(t *testing.T) {
	m := New[any]()
	m.Set(IntKey(math.MaxInt64), "max")
	m.Set(IntKey(math.MinInt64), "min")

	_, err := m.NextIndex()
	require.ErrorIs(t, err, ErrIndexOverflow)

	_, err = m.Append("x")
	require.ErrorIs(t, err, ErrIndexOverflow)
	requireKeys(t, m, math.MaxInt64, math.MinInt64)
}

func TestMapAppend(t *testing.T) {
	m := kv("a", 1, 3, 2)
	k, err := m.Append("x")
	require.NoError(t, err)
	require.Equal(t, IntKey(4), k)
	requireKeys(t, m, "a", 3, 4)
}

func TestMapFromValuesAndReindex(t *testing.T) {
	req := require.New(t)
	m := FromValues[any]("a", "b", "c")
	requireKeys(t, m, 0, 1, 2)

	m = kv("x", "a", 9, "b")
	m.Reindex()
	requireKeys(t, m, 0, 1)
	req.Equal([]any{"a", "b"}, m.Values())
	v, ok := m.Get(IntKey(1))
	req.True(ok)
	req.Equal("b", v)
}

func TestMapAtAndEach(t *testing.T) {
	req := require.New(t)
	m := kv("a", 1, "b", 2, "c", 3)

	e, ok := m.At(1)
	req.True(ok)
	req.Equal(StringKey("b"), e.Key)
	req.Equal(2, e.Value)
	_, ok = m.At(3)
	req.False(ok)
	_, ok = m.At(-1)
	req.False(ok)

	var seen []Key
	m.Each(func(k Key, v any) bool {
		seen = append(seen, k)
		return k != StringKey("b")
	})
	req.Len(seen, 2)
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := kv("a", 1, "b", 2)
	c := m.Clone()
	c.Set(StringKey("c"), 3)
	c.Delete(StringKey("a"))

	requireKeys(t, m, "a", "b")
	requireKeys(t, c, "b", "c")
}

func TestMapEqual(t *testing.T) {
	req := require.New(t)
	req.True(kv("a", int64(1), "b", "x").Equal(kv("a", int64(1), "b", "x")))
	req.False(kv("a", int64(1), "b", "x").Equal(kv("b", "x", "a", int64(1))), "order matters")
	req.False(kv("a", int64(1)).Equal(kv("a", 1)), "value types matter")
	req.True(New[any]().Equal(nil))
}

func TestKeyString(t *testing.T) {
	req := require.New(t)
	req.Equal("12", IntKey(12).String())
	req.Equal(`"12"`, StringKey("12").String())
	req.Equal("12", StringKey("12").Text())
	req.NotEqual(IntKey(12), StringKey("12"))
}

func TestCompareKeys(t *testing.T) {
	ks := keys("b", 10, "a", -1, 2)
	m := New[int]()
	for i, k := range ks {
		m.Set(k, i)
	}
	m.SortKeys()
	requireKeys(t, m, -1, 2, 10, "a", "b")
}
