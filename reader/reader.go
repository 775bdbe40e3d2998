// reader hands out runes one at a time, normalizes OS newlines, and keeps track
// of the position of the cursor in terms of bytes, lines and columns.
// Read errors end the input: the reader returns EOF from then on and keeps the
// error for Err, which keeps the scanning loops on top of it simple.
package reader

import (
	"bufio"
	"fmt"
	"io"
)

// EOF is returned by ReadRune once the input is exhausted.
const EOF rune = -1

// Pos is a cursor position. Line and Column are zero-based, Column counts
// runes and Offset counts bytes.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line+1, p.Column+1)
	}
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

type Reader struct {
	src     *bufio.Reader
	pos     Pos
	last    rune
	size    int
	lastPos Pos
	prev    rune // rune before last, to see \r\n pairs
	pushed  bool
	atEOF   bool
	done    bool
	err     error
}

func New(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{src: br, last: EOF, prev: EOF}
}

// NewFile is New with positions reporting the given file name.
func NewFile(r io.Reader, file string) *Reader {
	rd := New(r)
	rd.pos.File = file
	return rd
}

// Pos returns the position of the next rune to be read.
func (r *Reader) Pos() Pos {
	return r.pos
}

// Err returns the first read error other than io.EOF.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) ReadRune() rune {
	if r.pushed {
		r.pushed = false
		r.pos = advance(r.lastPos, r.last, r.size, r.prev)
		return r.last
	}
	if r.done {
		r.atEOF = true
		return EOF
	}
	ch, size, err := r.src.ReadRune()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		r.done, r.atEOF = true, true
		return EOF
	}
	r.atEOF = false
	r.prev, r.last, r.size, r.lastPos = r.last, ch, size, r.pos
	r.pos = advance(r.pos, ch, size, r.prev)
	return ch
}

// UnreadRune steps back over the rune returned by the last ReadRune. Only one
// rune can be unread, and unreading EOF does nothing.
func (r *Reader) UnreadRune() {
	if r.pushed || r.atEOF || r.last == EOF {
		return
	}
	r.pushed = true
	r.pos = r.lastPos
}

func advance(p Pos, ch rune, size int, prev rune) Pos {
	p.Offset += size
	switch {
	case ch == '\n' && prev == '\r':
		// \r\n is one line break, already counted at \r
	case ch == '\n' || ch == '\r':
		p.Line++
		p.Column = 0
	default:
		p.Column++
	}
	return p
}
