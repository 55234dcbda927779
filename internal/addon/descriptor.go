package addon

import (
	"fmt"
	"os"
	"strconv"

	"github.com/supertux/addon-index/internal/sexpr"
)

const (
	// InfoTag heads every descriptor and every block of the index document.
	InfoTag = "supertux-addoninfo"

	// DescriptorExt is the file extension of add-on descriptors.
	DescriptorExt = ".nfo"

	// translationMarker wraps translatable strings: (title (_ "My Level")).
	translationMarker = "_"
)

// Descriptor field names, in index order.
const (
	FieldID      = "id"
	FieldVersion = "version"
	FieldType    = "type"
	FieldTitle   = "title"
	FieldAuthor  = "author"
	FieldLicense = "license"
)

// Fields lists the recognized descriptor keys in the order they are written.
var Fields = []string{FieldID, FieldVersion, FieldType, FieldTitle, FieldAuthor, FieldLicense}

// Descriptor is the validated content of an add-on's .nfo file.
type Descriptor struct {
	ID      string `json:"id" yaml:"id"`
	Version int    `json:"version" yaml:"version"`
	Type    string `json:"type" yaml:"type"`
	Title   string `json:"title" yaml:"title"`
	Author  string `json:"author" yaml:"author"`
	License string `json:"license" yaml:"license"`
}

// LoadDescriptor reads and parses the descriptor file at path.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "reading descriptor", Path: path, Err: err}
	}
	d, err := ParseDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseDescriptor parses descriptor text. The first top-level expression
// must be a supertux-addoninfo list; anything after it is ignored.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	exprs, err := sexpr.Parse(data)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	if len(exprs) == 0 {
		return nil, &FormatError{Head: "empty document"}
	}
	return DescriptorFromValue(exprs[0])
}

// DescriptorFromValue extracts a Descriptor from an already parsed
// supertux-addoninfo list and validates it against the descriptor schema.
func DescriptorFromValue(v sexpr.Value) (*Descriptor, error) {
	head, ok := v.Head()
	if !ok {
		return nil, &FormatError{Head: v.String()}
	}
	if !head.IsSymbol(InfoTag) {
		return nil, &FormatError{Head: head.String()}
	}

	fields := make(map[string]any, len(Fields))
	for _, entry := range v.List[1:] {
		if entry.Kind != sexpr.KindList || len(entry.List) != 2 || entry.List[0].Kind != sexpr.KindSymbol {
			return nil, &FormatError{Detail: fmt.Sprintf("line %d: expected (key value), got %s", entry.Line, entry.String())}
		}
		key, val := entry.List[0].Text, entry.List[1]

		switch key {
		case FieldID, FieldType, FieldTitle, FieldAuthor, FieldLicense:
			s, ok := stringValue(val)
			if !ok {
				return nil, &TypeError{Field: key, Want: "string", Got: val.String()}
			}
			fields[key] = s
		case FieldVersion:
			n, ok := intValue(val)
			if !ok {
				return nil, &TypeError{Field: key, Want: "integer", Got: val.String()}
			}
			fields[key] = n
		default:
			return nil, &UnknownFieldError{Key: key}
		}
	}

	if err := validateFields(fields); err != nil {
		return nil, err
	}

	d := &Descriptor{
		ID:      fields[FieldID].(string),
		Version: int(fields[FieldVersion].(int64)),
		Type:    fields[FieldType].(string),
		Title:   fields[FieldTitle].(string),
		Author:  fields[FieldAuthor].(string),
		License: fields[FieldLicense].(string),
	}
	return d, nil
}

// Value renders the descriptor as a supertux-addoninfo list.
func (d *Descriptor) Value() sexpr.Value {
	return sexpr.List(
		sexpr.Symbol(InfoTag),
		sexpr.List(sexpr.Symbol(FieldID), sexpr.String(d.ID)),
		sexpr.List(sexpr.Symbol(FieldVersion), sexpr.Integer(int64(d.Version))),
		sexpr.List(sexpr.Symbol(FieldType), sexpr.String(d.Type)),
		sexpr.List(sexpr.Symbol(FieldTitle), sexpr.String(d.Title)),
		sexpr.List(sexpr.Symbol(FieldAuthor), sexpr.String(d.Author)),
		sexpr.List(sexpr.Symbol(FieldLicense), sexpr.String(d.License)),
	)
}

// stringValue accepts strings, bare symbols and (_ "text") translation
// markers.
func stringValue(v sexpr.Value) (string, bool) {
	switch v.Kind {
	case sexpr.KindString, sexpr.KindSymbol:
		return v.Text, true
	case sexpr.KindList:
		if len(v.List) == 2 && v.List[0].IsSymbol(translationMarker) && v.List[1].Kind == sexpr.KindString {
			return v.List[1].Text, true
		}
	}
	return "", false
}

// intValue accepts integer literals and strings holding a decimal integer.
func intValue(v sexpr.Value) (int64, bool) {
	switch v.Kind {
	case sexpr.KindInteger:
		return v.Int, true
	case sexpr.KindString:
		n, err := strconv.ParseInt(v.Text, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
