package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every [SyntaxError].
var ErrSyntax = errors.New("syntax error")

// SyntaxError describes malformed input and where it was found.
type SyntaxError struct {
	Msg  string
	Line int
	Col  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokAssign
	tokComma
	tokSemicolon
	tokMinus
	tokName
	tokString
	tokNumber
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokAssign:
		return "'='"
	case tokComma:
		return "','"
	case tokSemicolon:
		return "';'"
	case tokMinus:
		return "'-'"
	case tokName:
		return "name"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	}

	return "unknown token"
}

var (
	punctuation = map[byte]tokenKind{
		'{': tokLBrace,
		'}': tokRBrace,
		'[': tokLBracket,
		']': tokRBracket,
		'=': tokAssign,
		',': tokComma,
		';': tokSemicolon,
		'-': tokMinus,
	}

	escapes = map[byte]byte{
		'n':  '\n',
		't':  '\t',
		'r':  '\r',
		'a':  '\a',
		'b':  '\b',
		'f':  '\f',
		'v':  '\v',
		'\\': '\\',
		'"':  '"',
		'\'': '\'',
		'\n': '\n',
	}
)

type token struct {
	text string
	num  float64
	kind tokenKind
	line int
	col  int
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}

	return 0
}

func (l *lexer) advance(n int) {
	for range n {
		if l.pos >= len(l.src) {
			return
		}

		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}

		l.pos++
	}
}

// skip consumes whitespace and comments.
func (l *lexer) skip() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v':
			l.advance(1)

		case c == '-' && l.peekByte(1) == '-':
			line, col := l.line, l.col
			l.advance(2)

			if strings.HasPrefix(l.src[l.pos:], "[[") {
				end := strings.Index(l.src[l.pos+2:], "]]")
				if end < 0 {
					return l.errorf(line, col, "unterminated block comment")
				}

				l.advance(end + 4)

				continue
			}

			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance(1)
			}

		default:
			return nil
		}
	}

	return nil
}

func (l *lexer) next() (token, error) {
	err := l.skip()
	if err != nil {
		return token{}, err
	}

	tk := token{line: l.line, col: l.col}
	if l.pos >= len(l.src) {
		tk.kind = tokEOF

		return tk, nil
	}

	c := l.src[l.pos]

	if kind, ok := punctuation[c]; ok {
		tk.kind = kind
		tk.text = string(c)
		l.advance(1)

		return tk, nil
	}

	switch {
	case c == '"' || c == '\'':
		return l.lexString(tk, c)

	case isDigit(c) || c == '.' && isDigit(l.peekByte(1)):
		return l.lexNumber(tk)

	case isNameStart(c):
		start := l.pos
		for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
			l.advance(1)
		}

		tk.kind = tokName
		tk.text = l.src[start:l.pos]

		return tk, nil
	}

	return token{}, l.errorf(tk.line, tk.col, "unexpected character %q", c)
}

func (l *lexer) lexNumber(tk token) (token, error) {
	start := l.pos

	if l.peekByte(0) == '0' && (l.peekByte(1) == 'x' || l.peekByte(1) == 'X') {
		l.advance(2)

		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.advance(1)
		}

		text := l.src[start:l.pos]

		n, err := strconv.ParseUint(text[2:], 16, 53)
		if err != nil {
			return token{}, l.errorf(tk.line, tk.col, "malformed number %q", text)
		}

		tk.kind = tokNumber
		tk.text = text
		tk.num = float64(n)

		return tk, nil
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDigit(c) || c == '.' {
			l.advance(1)

			continue
		}

		if c == 'e' || c == 'E' {
			l.advance(1)

			if l.peekByte(0) == '+' || l.peekByte(0) == '-' {
				l.advance(1)
			}

			continue
		}

		break
	}

	if l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
		return token{}, l.errorf(tk.line, tk.col, "malformed number near %q", l.src[start:l.pos+1])
	}

	text := l.src[start:l.pos]

	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, l.errorf(tk.line, tk.col, "malformed number %q", text)
	}

	tk.kind = tokNumber
	tk.text = text
	tk.num = n

	return tk, nil
}

func (l *lexer) lexString(tk token, quote byte) (token, error) {
	l.advance(1)

	var sb strings.Builder

	for {
		if l.pos >= len(l.src) {
			return token{}, l.errorf(tk.line, tk.col, "unterminated string")
		}

		c := l.src[l.pos]

		switch c {
		case quote:
			l.advance(1)

			tk.kind = tokString
			tk.text = sb.String()

			return tk, nil

		case '\n':
			return token{}, l.errorf(tk.line, tk.col, "unterminated string")

		case '\\':
			b, err := l.lexEscape()
			if err != nil {
				return token{}, err
			}

			sb.WriteByte(b)

		default:
			sb.WriteByte(c)
			l.advance(1)
		}
	}
}

func (l *lexer) lexEscape() (byte, error) {
	line, col := l.line, l.col
	l.advance(1)

	if l.pos >= len(l.src) {
		return 0, l.errorf(line, col, "unterminated string")
	}

	c := l.src[l.pos]

	if b, ok := escapes[c]; ok {
		l.advance(1)

		return b, nil
	}

	if c == 'x' {
		if !isHexDigit(l.peekByte(1)) || !isHexDigit(l.peekByte(2)) {
			return 0, l.errorf(line, col, "invalid hex escape")
		}

		n, _ := strconv.ParseUint(l.src[l.pos+1:l.pos+3], 16, 8) //nolint:errcheck // Digits checked above.
		l.advance(3)

		return byte(n), nil
	}

	if isDigit(c) {
		end := l.pos
		for end < len(l.src) && end-l.pos < 3 && isDigit(l.src[end]) {
			end++
		}

		n, err := strconv.Atoi(l.src[l.pos:end])
		if err != nil || n > 255 {
			return 0, l.errorf(line, col, "decimal escape too large")
		}

		l.advance(end - l.pos)

		return byte(n), nil
	}

	return 0, l.errorf(line, col, "invalid escape sequence \\%c", c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isNameStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}
