package omap

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func sample() *Map[any] {
	return kv(
		"b", int64(1),
		0, "x",
		"a", kv("k", true, "n", nil),
		"01", 1.5,
		"list", FromValues[any]("p", "q"),
	)
}

func TestJSONKeepsOrder(t *testing.T) {
	req := require.New(t)
	data, err := json.Marshal(sample())
	req.NoError(err)
	req.Equal(`{"b":1,"0":"x","a":{"k":true,"n":null},"01":1.5,"list":{"0":"p","1":"q"}}`, string(data))

	got := New[any]()
	req.NoError(json.Unmarshal(data, got))
	requireMap(t, sample(), got)
}

func TestJSONArrayDecodesAsList(t *testing.T) {
	var m *Map[any]
	require.NoError(t, json.Unmarshal([]byte(`["a", 2, [true], {"5": -1.25}]`), &m))
	requireMap(t, kv(
		0, "a",
		1, int64(2),
		2, FromValues[any](true),
		3, kv(5, -1.25),
	), m)
}

func TestJSONTypedValues(t *testing.T) {
	req := require.New(t)
	m := New[[]string]()
	req.NoError(json.Unmarshal([]byte(`{"z": ["1"], "a": ["2", "3"]}`), m))
	requireKeys(t, m, "z", "a")
	v, _ := m.Get(StringKey("a"))
	req.Equal([]string{"2", "3"}, v)

	err := json.Unmarshal([]byte(`{"z": 1}`), m)
	req.Error(err)
	requireKeys(t, m, "z", "a")
}

func TestJSONRejectsScalars(t *testing.T) {
	m := New[any]()
	require.Error(t, json.Unmarshal([]byte(`"str"`), m))
}

func TestMsgpackKeepsOrder(t *testing.T) {
	req := require.New(t)
	data, err := msgpack.Marshal(sample())
	req.NoError(err)

	got := New[any]()
	req.NoError(msgpack.Unmarshal(data, got))
	requireMap(t, sample(), got)

	var buf bytes.Buffer
	req.NoError(WriteMsgpack(&buf, sample()))
	got, err = ReadMsgpack[any](&buf)
	req.NoError(err)
	requireMap(t, sample(), got)
}

func TestMsgpackTypedValues(t *testing.T) {
	req := require.New(t)
	m := FromEntries(Entry[string]{IntKey(3), "c"}, Entry[string]{StringKey("a"), "x"})
	data, err := msgpack.Marshal(m)
	req.NoError(err)

	got := New[string]()
	req.NoError(msgpack.Unmarshal(data, got))
	req.Equal(m.Entries(), got.Entries())
}

func TestGoStringDump(t *testing.T) {
	s := sample().GoString()
	require.True(t, strings.Contains(s, `"\"b\""`), s)
	require.True(t, strings.Contains(s, `"\"list\""`), s)
}
