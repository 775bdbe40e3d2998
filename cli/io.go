package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgolang/omapedit/literal"
	"github.com/rgolang/omapedit/omap"
)

const (
	formatLiteral = "literal"
	formatJSON    = "json"
	formatMsgpack = "msgpack"
)

func checkFormat(format string) error {
	switch format {
	case "", formatLiteral, formatJSON, formatMsgpack:
		return nil
	}
	return fmt.Errorf("unknown format %q, want %s, %s or %s", format, formatLiteral, formatJSON, formatMsgpack)
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".msgpack", ".mp":
		return formatMsgpack
	}
	return formatLiteral
}

func readMap(r io.Reader, name, format string) (*omap.Map[any], error) {
	switch format {
	case formatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		m := omap.New[any]()
		if err := json.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return m, nil
	case formatMsgpack:
		m, err := omap.ReadMsgpack[any](r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return m, nil
	default:
		return literal.ParseFile(r, name)
	}
}

func writeMap(w io.Writer, m *omap.Map[any], format string, indent int) error {
	prefix := strings.Repeat(" ", max(indent, 0))
	switch format {
	case formatJSON:
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		if prefix != "" {
			var buf bytes.Buffer
			if err := json.Indent(&buf, data, "", prefix); err != nil {
				return err
			}
			data = buf.Bytes()
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case formatMsgpack:
		return omap.WriteMsgpack(w, m)
	default:
		if err := literal.Format(w, m, prefix); err != nil {
			return err
		}
		if prefix == "" {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}
}

func readFile(path string, in io.Reader, format string) (*omap.Map[any], error) {
	if path == "-" {
		return readMap(in, "stdin", format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readMap(f, path, format)
}
