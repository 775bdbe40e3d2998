package reader

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestReader_ReadRuneRN(t *testing.T) {
	r := New(strings.NewReader("Hëllo\r\nWörld"))
	req := require.New(t)

	lastRune := r.ReadRune() // Read 'H'
	req.Equal('H', lastRune, fmt.Sprintf("expected 'H', got: '%v'", string(lastRune)))
	req.Equal(1, r.Pos().Offset)
	req.Equal(1, r.Pos().Column)
	req.Equal(0, r.Pos().Line)

	lastRune = r.ReadRune() // Read 'ë'
	req.Equal('ë', lastRune, fmt.Sprintf("expected 'ë', got: '%v'", string(lastRune)))
	req.Equal(3, r.Pos().Offset) // 'ë' is 2 bytes in UTF-8
	req.Equal(2, r.Pos().Column)
	req.Equal(0, r.Pos().Line)

	r.ReadRune()            // Read 'l'
	r.ReadRune()            // Read 'l'
	lastRune = r.ReadRune() // Read 'o'
	req.Equal('o', lastRune, fmt.Sprintf("expected 'o', got: '%v'", string(lastRune)))

	lastRune = r.ReadRune() // Read '\r'
	req.Equal('\r', lastRune)
	req.Equal(7, r.Pos().Offset)
	req.Equal(0, r.Pos().Column)
	req.Equal(1, r.Pos().Line)

	lastRune = r.ReadRune() // Read '\n'
	req.Equal('\n', lastRune)
	req.Equal(8, r.Pos().Offset)
	req.Equal(0, r.Pos().Column)
	req.Equal(1, r.Pos().Line)

	lastRune = r.ReadRune() // Read 'W'
	req.Equal('W', lastRune)
	req.Equal(9, r.Pos().Offset)
	req.Equal(1, r.Pos().Column)
	req.Equal(1, r.Pos().Line)
}

func TestReader_LineBreaks(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{"newline", "Hëllo\nWörld"},
		{"carriage return", "Hëllo\rWörld"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := New(strings.NewReader(tc.input))
			req := require.New(t)
			for i := 0; i < 6; i++ { // up to and including the line break
				r.ReadRune()
			}
			req.Equal(7, r.Pos().Offset)
			req.Equal(0, r.Pos().Column)
			req.Equal(1, r.Pos().Line)

			r.ReadRune() // Read 'W'
			req.Equal(8, r.Pos().Offset)
			req.Equal(1, r.Pos().Column)
			req.Equal(1, r.Pos().Line)
		})
	}
}

func TestReader_ReadRune_EOF(t *testing.T) {
	r := New(strings.NewReader("Hë"))
	req := require.New(t)

	r.ReadRune()             // Read 'H'
	r.ReadRune()             // Read 'ë', is 2 bytes in UTF-8
	lastRune := r.ReadRune() // Attempt to read beyond EOF

	req.Equal(EOF, lastRune)
	req.Equal(EOF, r.ReadRune())
	req.Equal(3, r.Pos().Offset)
	req.Equal(2, r.Pos().Column)
	req.NoError(r.Err())

	r.UnreadRune() // no-op after EOF
	req.Equal(EOF, r.ReadRune())
}

func TestReader_UnreadRune(t *testing.T) {
	r := New(strings.NewReader("Hë\nx"))
	req := require.New(t)

	r.UnreadRune() // nothing read yet
	req.Equal(0, r.Pos().Offset)

	r.ReadRune()
	r.ReadRune()
	r.UnreadRune()
	r.UnreadRune() // only one rune can be unread
	req.Equal(1, r.Pos().Offset)
	req.Equal(1, r.Pos().Column)

	req.Equal('ë', r.ReadRune())
	req.Equal(3, r.Pos().Offset)

	req.Equal('\n', r.ReadRune())
	r.UnreadRune()
	req.Equal(0, r.Pos().Line)
	req.Equal('\n', r.ReadRune())
	req.Equal(1, r.Pos().Line)
	req.Equal('x', r.ReadRune())
}

func TestReader_Error(t *testing.T) {
	boom := errors.New("boom")
	r := NewFile(iotest.ErrReader(boom), "in.omap")
	require.Equal(t, EOF, r.ReadRune())
	require.ErrorIs(t, r.Err(), boom)
	require.Equal(t, "in.omap:1:1", r.Pos().String())
}
