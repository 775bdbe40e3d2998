package omap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var (
	_ json.Marshaler         = (*Map[any])(nil)
	_ json.Unmarshaler       = (*Map[any])(nil)
	_ msgpack.CustomEncoder = (*Map[any])(nil)
	_ msgpack.CustomDecoder = (*Map[any])(nil)
)

// dynamic returns a pointer to v as *any when V is the empty interface, which
// is when nested maps and numbers get decoded into *Map[any], int64 and float64
// instead of relying on the codec's defaults.
func dynamic[V any](v *V) (*any, bool) {
	p, ok := any(v).(*any)
	return p, ok
}

// MarshalJSON encodes the map as a JSON object in iteration order. Integer
// keys become decimal object names.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.Key.Text())
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value of key %v: %w", e.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the order of its members, or a
// JSON array as a map keyed 0..n-1. Object names that are canonical decimal
// integers become integer keys.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read JSON map: %w", err)
	}
	var end json.Delim
	switch tok {
	case json.Delim('{'):
		end = '}'
	case json.Delim('['):
		end = ']'
	default:
		return fmt.Errorf("expected JSON object or array, got %v", tok)
	}

	tmp := New[V]()
	for dec.More() {
		var key Key
		if end == '}' {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("failed to read JSON object name: %w", err)
			}
			key = jsonKey(tok.(string))
		} else {
			key = IntKey(int64(tmp.Len()))
		}

		var v V
		if p, ok := dynamic(&v); ok {
			*p, err = decodeJSONValue(dec)
		} else {
			var raw json.RawMessage
			if err = dec.Decode(&raw); err == nil {
				err = json.Unmarshal(raw, &v)
			}
		}
		if err != nil {
			return fmt.Errorf("failed to decode JSON value of key %v: %w", key, err)
		}
		tmp.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read end of JSON map: %w", err)
	}
	m.replace(tmp.entries)
	return nil
}

func jsonKey(name string) Key {
	if n, ok := canonicalIntKey(name); ok {
		return IntKey(n)
	}
	return StringKey(name)
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		m := New[any]()
		for dec.More() {
			key := IntKey(int64(m.Len()))
			if t == '{' {
				name, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key = jsonKey(name.(string))
			}
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case json.Number:
		if n, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return n, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

// EncodeMsgpack writes the map as a msgpack map in iteration order, with
// native integer and string keys.
func (m *Map[V]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(m.entries)); err != nil {
		return err
	}
	for _, e := range m.entries {
		var err error
		if s, ok := e.Key.Str(); ok {
			err = enc.EncodeString(s)
		} else {
			n, _ := e.Key.Int()
			err = enc.EncodeInt(n)
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(e.Value); err != nil {
			return fmt.Errorf("failed to encode value of key %v: %w", e.Key, err)
		}
	}
	return nil
}

// DecodeMsgpack reads a msgpack map keeping the order of its entries. A
// msgpack array is read as a map keyed 0..n-1.
func (m *Map[V]) DecodeMsgpack(dec *msgpack.Decoder) error {
	c, err := dec.PeekCode()
	if err != nil {
		return err
	}
	list := isArrayCode(c)
	var n int
	if list {
		n, err = dec.DecodeArrayLen()
	} else {
		n, err = dec.DecodeMapLen()
	}
	if err != nil {
		return err
	}

	tmp := New[V]()
	for i := 0; i < n; i++ {
		key := IntKey(int64(i))
		if !list {
			if key, err = decodeMsgpackKey(dec); err != nil {
				return err
			}
		}
		var v V
		if p, ok := dynamic(&v); ok {
			*p, err = decodeMsgpackValue(dec)
		} else {
			err = dec.Decode(&v)
		}
		if err != nil {
			return fmt.Errorf("failed to decode value of key %v: %w", key, err)
		}
		tmp.Set(key, v)
	}
	m.replace(tmp.entries)
	return nil
}

func isMapCode(c byte) bool {
	return msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32
}

func isArrayCode(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

func decodeMsgpackKey(dec *msgpack.Decoder) (Key, error) {
	raw, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return Key{}, err
	}
	switch k := raw.(type) {
	case string:
		return StringKey(k), nil
	case int64:
		return IntKey(k), nil
	case uint64:
		if k <= math.MaxInt64 {
			return IntKey(int64(k)), nil
		}
	}
	return Key{}, fmt.Errorf("unsupported msgpack map key %T(%v)", raw, raw)
}

func decodeMsgpackValue(dec *msgpack.Decoder) (any, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}
	if isMapCode(c) || isArrayCode(c) {
		m := New[any]()
		if err := m.DecodeMsgpack(dec); err != nil {
			return nil, err
		}
		return m, nil
	}
	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return nil, err
	}
	if u, ok := v.(uint64); ok && u <= math.MaxInt64 {
		return int64(u), nil
	}
	return v, nil
}

// WriteMsgpack encodes m to w.
func WriteMsgpack[V any](w io.Writer, m *Map[V]) error {
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	enc.Reset(w)
	return m.EncodeMsgpack(enc)
}

// ReadMsgpack decodes one msgpack map from r.
func ReadMsgpack[V any](r io.Reader) (*Map[V], error) {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(r)
	m := New[V]()
	if err := m.DecodeMsgpack(dec); err != nil {
		return nil, fmt.Errorf("failed to decode msgpack map: %w", err)
	}
	return m, nil
}
