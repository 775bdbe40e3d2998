package lex

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rgolang/omapedit/reader"
)

type TokenType int

const (
	TokenEnd TokenType = iota
	TokenIllegal
	TokenIdentifier
	TokenInt
	TokenFloat
	TokenString
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenColon
)

var tokenNames = [...]string{
	TokenEnd:          "end of input",
	TokenIllegal:      "illegal token",
	TokenIdentifier:   "identifier",
	TokenInt:          "integer",
	TokenFloat:        "float",
	TokenString:       "string",
	TokenLeftBrace:    "'{'",
	TokenRightBrace:   "'}'",
	TokenLeftBracket:  "'['",
	TokenRightBracket: "']'",
	TokenComma:        "','",
	TokenColon:        "':'",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexeme with the position of its first rune. For strings Value
// holds the unquoted text with escapes resolved; for illegal tokens it holds
// the reason.
type Token struct {
	Type  TokenType
	Pos   reader.Pos
	Value string
}

func (t *Token) String() string {
	switch t.Type {
	case TokenIdentifier, TokenInt, TokenFloat:
		return fmt.Sprintf("%s %s", t.Type, t.Value)
	case TokenString:
		return fmt.Sprintf("%s %q", t.Type, t.Value)
	case TokenIllegal:
		return t.Value
	}
	return t.Type.String()
}

var hasDebug bool

type Scanner struct {
	Token  *Token
	Reader *reader.Reader
}

func New(r io.Reader) *Scanner {
	return NewScanner(reader.New(r))
}

func NewScanner(rdr *reader.Reader) *Scanner {
	return &Scanner{
		Token:  nextToken(rdr),
		Reader: rdr,
	}
}

// NextToken returns the current token and moves on to the next one.
func (s *Scanner) NextToken() *Token {
	token := s.Token
	s.Token = nextToken(s.Reader)
	return token
}

func print(s string, args ...any) {
	if hasDebug {
		props := make([]any, len(args))
		for i, a := range args {
			switch v := a.(type) {
			case rune:
				switch v {
				case '\r':
					props[i] = "\\r"
				case '\n':
					props[i] = "\\n"
				case '\t':
					props[i] = "\\t"
				case ' ':
					props[i] = "\\s"
				case reader.EOF:
					props[i] = "\\EOF"
				default:
					props[i] = string(v)
				}
			default:
				props[i] = a
			}
		}
		fmt.Printf(s+"\n", props...)
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '.'
}

// IsIdentifier reports whether s lexes as a single identifier token.
func IsIdentifier(s string) bool {
	for i, ch := range s {
		if i == 0 && !isIdentStart(ch) || !isIdentPart(ch) {
			return false
		}
	}
	return s != ""
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func nextToken(r *reader.Reader) *Token {
	lastChar := r.ReadRune()

	// Skip whitespace and comments.
	for {
		for unicode.IsSpace(lastChar) {
			lastChar = r.ReadRune()
			print("read: %s - space", lastChar)
		}
		if lastChar == '#' || lastChar == '/' {
			pos := r.Pos()
			if lastChar == '/' {
				if next := r.ReadRune(); next != '/' {
					r.UnreadRune()
					pos.Column--
					pos.Offset--
					return &Token{Type: TokenIllegal, Pos: pos, Value: "unexpected '/'"}
				}
			}
			for lastChar != '\n' && lastChar != '\r' && lastChar != reader.EOF {
				lastChar = r.ReadRune()
				print("read: %s - comment", lastChar)
			}
			continue
		}
		break
	}

	if lastChar == reader.EOF {
		return &Token{Type: TokenEnd, Pos: r.Pos()}
	}

	r.UnreadRune()
	start := r.Pos()
	r.ReadRune()

	// Consume identifiers.
	if isIdentStart(lastChar) {
		var idStr strings.Builder
		for isIdentPart(lastChar) {
			idStr.WriteRune(lastChar)
			lastChar = r.ReadRune()
			print("read: %s - identifier", lastChar)
		}
		r.UnreadRune()
		print("unrd: %s", lastChar)
		return &Token{Type: TokenIdentifier, Pos: start, Value: idStr.String()}
	}

	// Consume numbers: -12, 3.5, 1e9, -2.5E-3.
	if isDigit(lastChar) || lastChar == '-' || lastChar == '+' {
		return number(r, start, lastChar)
	}

	// Consume strings.
	if lastChar == '"' || lastChar == '\'' {
		return quoted(r, start, lastChar)
	}

	print("read: %s - symbol", lastChar)
	switch lastChar {
	case '{':
		return &Token{Type: TokenLeftBrace, Pos: start, Value: "{"}
	case '}':
		return &Token{Type: TokenRightBrace, Pos: start, Value: "}"}
	case '[':
		return &Token{Type: TokenLeftBracket, Pos: start, Value: "["}
	case ']':
		return &Token{Type: TokenRightBracket, Pos: start, Value: "]"}
	case ',':
		return &Token{Type: TokenComma, Pos: start, Value: ","}
	case ':':
		return &Token{Type: TokenColon, Pos: start, Value: ":"}
	}
	return &Token{Type: TokenIllegal, Pos: start, Value: fmt.Sprintf("unexpected %q", lastChar)}
}

func number(r *reader.Reader, start reader.Pos, lastChar rune) *Token {
	var numStr strings.Builder
	digits := func() int {
		n := 0
		for isDigit(lastChar) {
			numStr.WriteRune(lastChar)
			lastChar = r.ReadRune()
			print("read: %s - number", lastChar)
			n++
		}
		return n
	}
	illegal := func(msg string) *Token {
		r.UnreadRune()
		return &Token{Type: TokenIllegal, Pos: start, Value: fmt.Sprintf("%s in number %q", msg, numStr.String())}
	}

	typ := TokenInt
	if lastChar == '-' || lastChar == '+' {
		numStr.WriteRune(lastChar)
		lastChar = r.ReadRune()
	}
	if digits() == 0 {
		return illegal("missing digits")
	}
	if lastChar == '.' {
		typ = TokenFloat
		numStr.WriteRune(lastChar)
		lastChar = r.ReadRune()
		if digits() == 0 {
			return illegal("missing fraction digits")
		}
	}
	if lastChar == 'e' || lastChar == 'E' {
		typ = TokenFloat
		numStr.WriteRune(lastChar)
		lastChar = r.ReadRune()
		if lastChar == '-' || lastChar == '+' {
			numStr.WriteRune(lastChar)
			lastChar = r.ReadRune()
		}
		if digits() == 0 {
			return illegal("missing exponent digits")
		}
	}
	r.UnreadRune()
	print("unrd: %s", lastChar)
	return &Token{Type: typ, Pos: start, Value: numStr.String()}
}

func quoted(r *reader.Reader, start reader.Pos, quote rune) *Token {
	var str strings.Builder
	for {
		lastChar := r.ReadRune()
		print("read: %s - string", lastChar)
		switch lastChar {
		case quote:
			return &Token{Type: TokenString, Pos: start, Value: str.String()}
		case reader.EOF:
			return &Token{Type: TokenIllegal, Pos: start, Value: "missing closing quote"}
		case '\\':
			lastChar = r.ReadRune() // consume `\`
			print("read: %s - string escape", lastChar)
			switch lastChar {
			case 'n':
				str.WriteRune('\n')
			case 'r':
				str.WriteRune('\r')
			case 't':
				str.WriteRune('\t')
			case '\\', '"', '\'':
				str.WriteRune(lastChar)
			case reader.EOF:
				return &Token{Type: TokenIllegal, Pos: start, Value: "missing closing quote"}
			default:
				return &Token{Type: TokenIllegal, Pos: start, Value: fmt.Sprintf("unknown escape sequence \\%c", lastChar)}
			}
		default:
			str.WriteRune(lastChar)
		}
	}
}
