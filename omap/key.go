package omap

import (
	"strconv"
)

// Key labels an entry. It is either an integer key or a string key and the two
// kinds never compare equal: IntKey(1) != StringKey("1").
type Key struct {
	str   string
	num   int64
	isStr bool
}

func IntKey(n int64) Key {
	return Key{num: n}
}

func StringKey(s string) Key {
	return Key{str: s, isStr: true}
}

func (k Key) IsInt() bool {
	return !k.isStr
}

func (k Key) IsString() bool {
	return k.isStr
}

// Int returns the integer value of an integer key.
func (k Key) Int() (int64, bool) {
	return k.num, !k.isStr
}

// Str returns the string value of a string key.
func (k Key) Str() (string, bool) {
	return k.str, k.isStr
}

// String renders integer keys as decimals and string keys quoted, so the two
// kinds stay distinguishable in messages.
func (k Key) String() string {
	if k.isStr {
		return strconv.Quote(k.str)
	}
	return strconv.FormatInt(k.num, 10)
}

// Text is the bare textual form of the key, used where the encoding only has
// string keys (JSON object names).
func (k Key) Text() string {
	if k.isStr {
		return k.str
	}
	return strconv.FormatInt(k.num, 10)
}

// CompareKeys orders integer keys before string keys, integers numerically and
// strings bytewise.
func CompareKeys(a, b Key) int {
	switch {
	case a.isStr != b.isStr:
		if a.isStr {
			return 1
		}
		return -1
	case a.isStr:
		switch {
		case a.str < b.str:
			return -1
		case a.str > b.str:
			return 1
		}
		return 0
	default:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	}
}

// canonicalIntKey reports whether s is a decimal integer in canonical form
// ("0", "-12", not "012" or "+1"), the only strings that become integer keys
// when decoding formats whose object names are always strings.
func canonicalIntKey(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if strconv.FormatInt(n, 10) != s {
		return 0, false
	}
	return n, true
}
