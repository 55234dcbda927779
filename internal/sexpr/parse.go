package sexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports malformed input with the position it was detected at.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse reads every top-level expression in data.
func Parse(data []byte) ([]Value, error) {
	p := &parser{src: data, line: 1, col: 1}
	var out []Value
	for {
		p.skipSpace()
		if p.eof() {
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

type parser struct {
	src  []byte
	pos  int
	line int
	col  int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// skipSpace consumes whitespace and ';' comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.peek(); {
		case c == ';':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			p.next()
		default:
			return
		}
	}
}

func (p *parser) value() (Value, error) {
	line, col := p.line, p.col
	switch p.peek() {
	case '(':
		p.next()
		return p.list(line, col)
	case ')':
		return Value{}, p.errorf(line, col, "unexpected ')'")
	case '"':
		p.next()
		return p.str(line, col)
	default:
		return p.atom(line, col)
	}
}

func (p *parser) list(line, col int) (Value, error) {
	v := Value{Kind: KindList, Line: line, Col: col}
	for {
		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf(line, col, "unterminated list")
		}
		if p.peek() == ')' {
			p.next()
			return v, nil
		}
		item, err := p.value()
		if err != nil {
			return Value{}, err
		}
		v.List = append(v.List, item)
	}
}

func (p *parser) str(line, col int) (Value, error) {
	var b strings.Builder
	for {
		if p.eof() {
			return Value{}, p.errorf(line, col, "unterminated string")
		}
		c := p.next()
		switch c {
		case '"':
			return Value{Kind: KindString, Text: b.String(), Line: line, Col: col}, nil
		case '\\':
			if p.eof() {
				return Value{}, p.errorf(line, col, "unterminated string")
			}
			switch e := p.next(); e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
}

func (p *parser) atom(line, col int) (Value, error) {
	start := p.pos
	for !p.eof() && !isDelimiter(p.peek()) {
		p.next()
	}
	text := string(p.src[start:p.pos])

	switch {
	case text == "#t" || text == "#true":
		return Value{Kind: KindBoolean, Bool: true, Text: text, Line: line, Col: col}, nil
	case text == "#f" || text == "#false":
		return Value{Kind: KindBoolean, Bool: false, Text: text, Line: line, Col: col}, nil
	case strings.HasPrefix(text, "#"):
		return Value{}, p.errorf(line, col, "unknown literal %q", text)
	}

	if looksNumeric(text) {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Value{Kind: KindInteger, Int: n, Text: text, Line: line, Col: col}, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Value{Kind: KindReal, Real: f, Text: text, Line: line, Col: col}, nil
		}
	}
	// Tokens such as "1st-pack" start like numbers but are symbols.
	return Value{Kind: KindSymbol, Text: text, Line: line, Col: col}, nil
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '"', ';', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// looksNumeric reports whether text starts like a number: an optional sign
// followed by a digit, or by a dot and a digit.
func looksNumeric(text string) bool {
	s := text
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s != "" && s[0] == '.' {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
