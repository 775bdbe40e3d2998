package literal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/rgolang/omapedit/lex"
	"github.com/rgolang/omapedit/omap"
)

// Format writes m in the literal syntax. With an empty indent everything goes
// on one line; otherwise each entry gets its own line, nested by indent.
// Maps keyed 0..n-1 in order are written as lists.
func Format(w io.Writer, m *omap.Map[any], indent string) error {
	bw := bufio.NewWriter(w)
	f := &formatter{w: bw, indent: indent}
	if err := f.value(m, 0); err != nil {
		return err
	}
	if indent != "" {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func FormatString(m *omap.Map[any], indent string) (string, error) {
	var sb strings.Builder
	if err := Format(&sb, m, indent); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatValue renders a single value on one line.
func FormatValue(v any) (string, error) {
	var sb strings.Builder
	bw := bufio.NewWriter(&sb)
	f := &formatter{w: bw}
	if err := f.value(v, 0); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatKey renders k so that ParseKey returns it again.
func FormatKey(k omap.Key) string {
	if s, ok := k.Str(); ok {
		if lex.IsIdentifier(s) && !isKeyword(s) {
			return s
		}
		return quote(s)
	}
	return k.Text()
}

func isKeyword(s string) bool {
	return s == "true" || s == "false" || s == "null"
}

type formatter struct {
	w      *bufio.Writer
	indent string
}

func (f *formatter) newline(depth int) {
	if f.indent == "" {
		return
	}
	f.w.WriteByte('\n')
	for i := 0; i < depth; i++ {
		f.w.WriteString(f.indent)
	}
}

func (f *formatter) value(v any, depth int) error {
	switch x := v.(type) {
	case nil:
		f.w.WriteString("null")
	case bool:
		f.w.WriteString(strconv.FormatBool(x))
	case string:
		f.w.WriteString(quote(x))
	case float32:
		return f.float(float64(x))
	case float64:
		return f.float(x)
	case *omap.Map[any]:
		if x == nil {
			f.w.WriteString("null")
			return nil
		}
		return f.mapping(x, depth)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f.w.WriteString(strconv.FormatInt(rv.Int(), 10))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f.w.WriteString(strconv.FormatUint(rv.Uint(), 10))
		default:
			return fmt.Errorf("cannot write %T as a literal", v)
		}
	}
	return nil
}

func (f *formatter) float(x float64) error {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return fmt.Errorf("cannot write %v as a literal", x)
	}
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	f.w.WriteString(s)
	return nil
}

func isList(m *omap.Map[any]) bool {
	for i, k := range m.Keys() {
		if n, ok := k.Int(); !ok || n != int64(i) {
			return false
		}
	}
	return true
}

func (f *formatter) mapping(m *omap.Map[any], depth int) error {
	list := isList(m) && m.Len() > 0
	opening, closing := "{", "}"
	if list {
		opening, closing = "[", "]"
	}
	f.w.WriteString(opening)
	if m.Len() == 0 {
		f.w.WriteString(closing)
		return nil
	}
	for i, e := range m.Entries() {
		if i > 0 {
			f.w.WriteByte(',')
			if f.indent == "" {
				f.w.WriteByte(' ')
			}
		}
		f.newline(depth + 1)
		if !list {
			f.w.WriteString(FormatKey(e.Key))
			f.w.WriteString(": ")
		}
		if err := f.value(e.Value, depth+1); err != nil {
			return fmt.Errorf("value of key %v: %w", e.Key, err)
		}
	}
	f.newline(depth)
	f.w.WriteString(closing)
	return nil
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, ch := range s {
		switch ch {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(ch)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(ch)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
