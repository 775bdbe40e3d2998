package omap

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// StrictEqual reports whether a and b have the same dynamic type and the same
// value. No conversions happen: int64(0), "0" and false are all distinct.
// Nested *Map[any] values are compared entry by entry, in order.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if am, ok := a.(*Map[any]); ok {
		bm, ok := b.(*Map[any])
		if !ok {
			return false
		}
		if am == nil || bm == nil {
			return am == bm
		}
		return am == bm || am.Equal(bm)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.ValueOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// LooseEqual compares with type juggling:
//   - if either side is a bool, both are compared by truthiness;
//   - nil equals "", an empty map and any falsy value;
//   - numbers compare numerically, also against numeric strings;
//   - a number and a non-numeric string compare as strings;
//   - two strings compare numerically when both are numeric;
//   - maps are equal when they hold the same keys with loosely equal values,
//     in any order.
func LooseEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if _, ok := a.(bool); ok {
		return truthy(a) == truthy(b)
	}
	if _, ok := b.(bool); ok {
		return truthy(a) == truthy(b)
	}
	if a == nil || b == nil {
		other := a
		if other == nil {
			other = b
		}
		if s, ok := other.(string); ok {
			return s == ""
		}
		return !truthy(other)
	}

	an, aNum := toNumber(a)
	bn, bNum := toNumber(b)
	as, aStr := a.(string)
	bs, bStr := b.(string)
	switch {
	case aNum && bNum:
		return an.equal(bn)
	case aNum && bStr:
		if n, ok := parseNumeric(bs); ok {
			return an.equal(n)
		}
		return an.String() == bs
	case aStr && bNum:
		if n, ok := parseNumeric(as); ok {
			return n.equal(bn)
		}
		return as == bn.String()
	case aStr && bStr:
		if x, ok := parseNumeric(as); ok {
			if y, ok := parseNumeric(bs); ok {
				return x.equal(y)
			}
		}
		return as == bs
	}

	am, aMap := a.(*Map[any])
	bm, bMap := b.(*Map[any])
	if aMap || bMap {
		if !aMap || !bMap {
			return false
		}
		// a nil map is an empty one
		if am.Len() != bm.Len() {
			return false
		}
		for i := 0; i < am.Len(); i++ {
			e := am.entries[i]
			v, ok := bm.Get(e.Key)
			if !ok || !LooseEqual(e.Value, v) {
				return false
			}
		}
		return true
	}
	return StrictEqual(a, b)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	case *Map[any]:
		return x.Len() > 0
	}
	if n, ok := toNumber(v); ok {
		if n.isFloat {
			return n.f != 0
		}
		return n.i != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

type number struct {
	i       int64
	f       float64
	isFloat bool
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n number) equal(o number) bool {
	if !n.isFloat && !o.isFloat {
		return n.i == o.i
	}
	return n.float() == o.float()
}

func (n number) compare(o number) int {
	if !n.isFloat && !o.isFloat {
		switch {
		case n.i < o.i:
			return -1
		case n.i > o.i:
			return 1
		}
		return 0
	}
	x, y := n.float(), o.float()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func (n number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'G', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

func toNumber(v any) (number, bool) {
	switch x := v.(type) {
	case int:
		return number{i: int64(x)}, true
	case int8:
		return number{i: int64(x)}, true
	case int16:
		return number{i: int64(x)}, true
	case int32:
		return number{i: int64(x)}, true
	case int64:
		return number{i: x}, true
	case uint:
		return fromUint(uint64(x)), true
	case uint8:
		return number{i: int64(x)}, true
	case uint16:
		return number{i: int64(x)}, true
	case uint32:
		return number{i: int64(x)}, true
	case uint64:
		return fromUint(x), true
	case float32:
		return number{f: float64(x), isFloat: true}, true
	case float64:
		return number{f: x, isFloat: true}, true
	}
	return number{}, false
}

func fromUint(u uint64) number {
	if u > math.MaxInt64 {
		return number{f: float64(u), isFloat: true}
	}
	return number{i: int64(u)}
}

var numericRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// parseNumeric recognizes decimal integers and floats with optional exponent,
// surrounded by optional whitespace. Hex, infinities and NaN are not numeric.
func parseNumeric(s string) (number, bool) {
	s = strings.TrimSpace(s)
	if !numericRe.MatchString(s) {
		return number{}, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return number{i: i}, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		return number{}, false
	}
	return number{f: f, isFloat: true}, true
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// CompareValues is a total order over the values the literal syntax and the
// decoders produce: nil < bools < numbers < strings < maps < anything else.
// Numbers compare numerically across integer and float types, strings
// bytewise, maps by length and then entry by entry.
func CompareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankNil:
		return 0
	case rankBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case rankNumber:
		x, _ := toNumber(a)
		y, _ := toNumber(b)
		return x.compare(y)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankMap:
		x, y := a.(*Map[any]), b.(*Map[any])
		if x.Len() != y.Len() {
			if x.Len() < y.Len() {
				return -1
			}
			return 1
		}
		for i := 0; i < x.Len(); i++ {
			if c := CompareKeys(x.entries[i].Key, y.entries[i].Key); c != 0 {
				return c
			}
			if c := CompareValues(x.entries[i].Value, y.entries[i].Value); c != 0 {
				return c
			}
		}
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankMap
	rankOther
)

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case string:
		return rankString
	case *Map[any]:
		return rankMap
	}
	if _, ok := toNumber(v); ok {
		return rankNumber
	}
	return rankOther
}

// Reverse inverts a three-way comparator.
func Reverse[V any](cmp func(a, b V) int) func(a, b V) int {
	return func(a, b V) int {
		return cmp(b, a)
	}
}
