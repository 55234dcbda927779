package sexpr

import (
	"strconv"
	"strings"
)

// Kind identifies the type of a Value.
type Kind int

const (
	KindList Kind = iota
	KindSymbol
	KindString
	KindInteger
	KindReal
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is one parsed expression. Only the field matching Kind is meaningful;
// Text holds the symbol name, the unescaped string, or the literal text of a
// number.
type Value struct {
	Kind Kind
	Text string
	Int  int64
	Real float64
	Bool bool
	List []Value

	// Position of the first character of the expression (1-based).
	Line int
	Col  int
}

// Symbol builds a symbol value.
func Symbol(name string) Value { return Value{Kind: KindSymbol, Text: name} }

// String builds a string value.
func String(s string) Value { return Value{Kind: KindString, Text: s} }

// Integer builds an integer value.
func Integer(n int64) Value {
	return Value{Kind: KindInteger, Int: n, Text: strconv.FormatInt(n, 10)}
}

// List builds a list value.
func List(items ...Value) Value { return Value{Kind: KindList, List: items} }

// IsSymbol reports whether v is the symbol name.
func (v Value) IsSymbol(name string) bool {
	return v.Kind == KindSymbol && v.Text == name
}

// Head returns the first element of a non-empty list.
func (v Value) Head() (Value, bool) {
	if v.Kind != KindList || len(v.List) == 0 {
		return Value{}, false
	}
	return v.List[0], true
}

// String renders v back into S-expression text on a single line.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case KindList:
		b.WriteByte('(')
		for i, item := range v.List {
			if i > 0 {
				b.WriteByte(' ')
			}
			item.write(b)
		}
		b.WriteByte(')')
	case KindString:
		b.WriteString(Quote(v.Text))
	case KindInteger:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindReal:
		if v.Text != "" {
			b.WriteString(v.Text)
		} else {
			b.WriteString(strconv.FormatFloat(v.Real, 'g', -1, 64))
		}
	case KindBoolean:
		if v.Bool {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	default:
		b.WriteString(v.Text)
	}
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Quote renders s as a string literal. Embedded quote characters and
// backslashes are escaped so the result parses back to s.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
