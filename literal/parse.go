// Package literal reads and writes ordered maps in a small text syntax:
//
//	{name: "omap", 0: 1.5, 'key with spaces': [true, false, null], "nested": {a: 1}}
//
// Entries without a key get the next free integer key, lists are maps keyed
// 0..n-1, and bare identifiers can be used both as keys and as string values.
package literal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rgolang/omapedit/lex"
	"github.com/rgolang/omapedit/omap"
	"github.com/rgolang/omapedit/reader"
)

// SyntaxError reports malformed input together with where it was found.
type SyntaxError struct {
	Pos reader.Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: %s", e.Pos, e.Msg)
}

type Parser struct {
	lex *lex.Scanner
}

func New(scanner *lex.Scanner) *Parser {
	return &Parser{
		lex: scanner,
	}
}

// Parse reads one map or list literal from r.
func Parse(r io.Reader) (*omap.Map[any], error) {
	return ParseFile(r, "")
}

// ParseFile is Parse with error positions naming file.
func ParseFile(r io.Reader, file string) (*omap.Map[any], error) {
	rdr := reader.NewFile(r, file)
	p := New(lex.NewScanner(rdr))
	v, err := p.Parse()
	if rerr := rdr.Err(); rerr != nil {
		return nil, fmt.Errorf("failed to read literal: %w", rerr)
	}
	if err != nil {
		return nil, err
	}
	m, ok := v.(*omap.Map[any])
	if !ok {
		return nil, &SyntaxError{reader.Pos{File: file}, fmt.Sprintf("expected a map or a list, got %T", v)}
	}
	return m, nil
}

func ParseString(s string) (*omap.Map[any], error) {
	return Parse(strings.NewReader(s))
}

// ParseValue reads a single value of any kind: a scalar, a map or a list.
func ParseValue(s string) (any, error) {
	return New(lex.New(strings.NewReader(s))).Parse()
}

// ParseKey reads a key: integers become integer keys, quoted strings and
// identifiers become string keys, so "5" and 5 are different keys.
func ParseKey(s string) (omap.Key, error) {
	p := New(lex.New(strings.NewReader(s)))
	tok := p.lex.NextToken()
	k, err := p.key(tok)
	if err != nil {
		return omap.Key{}, err
	}
	if p.lex.Token.Type != lex.TokenEnd {
		return omap.Key{}, p.unexpected(p.lex.Token, "end of input")
	}
	return k, nil
}

// Parse reads one value and expects the input to end after it.
func (p *Parser) Parse() (any, error) {
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.lex.Token.Type != lex.TokenEnd {
		return nil, p.unexpected(p.lex.Token, "end of input")
	}
	return v, nil
}

func (p *Parser) unexpected(tok *lex.Token, want string) error {
	if tok.Type == lex.TokenIllegal {
		return &SyntaxError{tok.Pos, tok.Value}
	}
	return &SyntaxError{tok.Pos, fmt.Sprintf("expected %s, got %v", want, tok)}
}

func (p *Parser) value() (any, error) {
	tok := p.lex.NextToken()
	switch tok.Type {
	case lex.TokenLeftBrace:
		return p.handleMap(tok)
	case lex.TokenLeftBracket:
		return p.handleList(tok)
	default:
		return p.scalar(tok)
	}
}

func (p *Parser) scalar(tok *lex.Token) (any, error) {
	switch tok.Type {
	case lex.TokenInt:
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, &SyntaxError{tok.Pos, fmt.Sprintf("integer %s out of range", tok.Value)}
		}
		return n, nil
	case lex.TokenFloat:
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, &SyntaxError{tok.Pos, fmt.Sprintf("float %s out of range", tok.Value)}
		}
		return f, nil
	case lex.TokenString:
		return tok.Value, nil
	case lex.TokenIdentifier:
		switch tok.Value {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
		return tok.Value, nil
	}
	return nil, p.unexpected(tok, "a value")
}

func (p *Parser) key(tok *lex.Token) (omap.Key, error) {
	switch tok.Type {
	case lex.TokenInt:
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return omap.Key{}, &SyntaxError{tok.Pos, fmt.Sprintf("integer key %s out of range", tok.Value)}
		}
		return omap.IntKey(n), nil
	case lex.TokenString, lex.TokenIdentifier:
		return omap.StringKey(tok.Value), nil
	}
	return omap.Key{}, p.unexpected(tok, "a key")
}

func (p *Parser) handleMap(open *lex.Token) (*omap.Map[any], error) {
	m := omap.New[any]()
	for {
		tok := p.lex.Token
		switch tok.Type {
		case lex.TokenRightBrace:
			p.lex.NextToken() // eat the `}`
			return m, nil
		case lex.TokenEnd:
			return nil, &SyntaxError{open.Pos, "map is never closed"}
		case lex.TokenInt, lex.TokenString, lex.TokenIdentifier:
			p.lex.NextToken() // eat the key or scalar
			if p.lex.Token.Type == lex.TokenColon {
				k, err := p.key(tok)
				if err != nil {
					return nil, err
				}
				p.lex.NextToken() // eat the `:`
				v, err := p.value()
				if err != nil {
					return nil, fmt.Errorf("value of key %v: %w", k, err)
				}
				m.Set(k, v)
			} else {
				v, err := p.scalar(tok)
				if err != nil {
					return nil, err
				}
				if _, err := m.Append(v); err != nil {
					return nil, fmt.Errorf("%v: %w", tok.Pos, err)
				}
			}
		default:
			pos := tok.Pos
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			if _, err := m.Append(v); err != nil {
				return nil, fmt.Errorf("%v: %w", pos, err)
			}
		}

		switch p.lex.Token.Type {
		case lex.TokenComma:
			p.lex.NextToken() // eat the `,`
		case lex.TokenRightBrace:
		case lex.TokenEnd:
			return nil, &SyntaxError{open.Pos, "map is never closed"}
		default:
			return nil, p.unexpected(p.lex.Token, "',' or '}'")
		}
	}
}

func (p *Parser) handleList(open *lex.Token) (*omap.Map[any], error) {
	var values []any
	for {
		switch p.lex.Token.Type {
		case lex.TokenRightBracket:
			p.lex.NextToken() // eat the `]`
			return omap.FromValues(values...), nil
		case lex.TokenEnd:
			return nil, &SyntaxError{open.Pos, "list is never closed"}
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		switch p.lex.Token.Type {
		case lex.TokenComma:
			p.lex.NextToken() // eat the `,`
		case lex.TokenRightBracket:
		case lex.TokenEnd:
			return nil, &SyntaxError{open.Pos, "list is never closed"}
		default:
			return nil, p.unexpected(p.lex.Token, "',' or ']'")
		}
	}
}
