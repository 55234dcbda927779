package addon

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestLoadDescriptor_Valid(t *testing.T) {
	tests := []struct {
		file string
		want Descriptor
	}{
		{"valid.nfo", Descriptor{
			ID: "foo", Version: 1, Type: "level", Title: "Foo", Author: "A", License: "GPL",
		}},
		{"translated.nfo", Descriptor{
			ID: "bonus-island-3", Version: 12, Type: "worldmap", Title: `Bonus Island "III"`,
			Author: "The SuperTux Team", License: "CC-BY-SA 3.0",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := LoadDescriptor(testPath(tt.file))
			if err != nil {
				t.Fatalf("LoadDescriptor(%s) error: %v", tt.file, err)
			}
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadDescriptor_Errors(t *testing.T) {
	tests := []struct {
		file     string
		sentinel error
		mention  string
	}{
		{"unknown-field.nfo", ErrUnknownField, "foo"},
		{"wrong-head.nfo", ErrFormat, "supertux-level"},
		{"bad-version.nfo", ErrType, "version"},
		{"missing-license.nfo", ErrSchema, "license"},
		{"nonexistent.nfo", ErrIO, "nonexistent.nfo"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := LoadDescriptor(testPath(tt.file))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v is not %v", err, tt.sentinel)
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error %q does not mention %q", err, tt.mention)
			}
		})
	}
}

func TestParseDescriptor_UnknownFieldNamesKey(t *testing.T) {
	_, err := ParseDescriptor([]byte(`(supertux-addoninfo (id "x") (colour "red"))`))
	var ufe *UnknownFieldError
	if !errors.As(err, &ufe) {
		t.Fatalf("error = %v, want *UnknownFieldError", err)
	}
	if ufe.Key != "colour" {
		t.Errorf("Key = %q, want %q", ufe.Key, "colour")
	}
}

func TestParseDescriptor_Malformed(t *testing.T) {
	inputs := map[string]string{
		"empty":          "",
		"syntax error":   `(supertux-addoninfo (id "foo"`,
		"atom top level": `supertux-addoninfo`,
		"empty list":     `()`,
		"bare entry":     `(supertux-addoninfo id)`,
		"three elements": `(supertux-addoninfo (id "a" "b"))`,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDescriptor([]byte(input))
			if !errors.Is(err, ErrFormat) {
				t.Errorf("ParseDescriptor(%q) error = %v, want ErrFormat", input, err)
			}
		})
	}
}

func TestParseDescriptor_SchemaRules(t *testing.T) {
	base := map[string]string{
		"id":      `"foo"`,
		"version": `1`,
		"type":    `"level"`,
		"title":   `"Foo"`,
		"author":  `"A"`,
		"license": `"GPL"`,
	}
	tests := []struct {
		name     string
		override map[string]string
		sentinel error
	}{
		{"zero version", map[string]string{"version": "0"}, ErrSchema},
		{"negative version", map[string]string{"version": "-3"}, ErrSchema},
		{"id with slash", map[string]string{"id": `"../evil"`}, ErrSchema},
		{"empty title", map[string]string{"title": `""`}, ErrSchema},
		{"real version", map[string]string{"version": "1.5"}, ErrType},
		{"numeric author", map[string]string{"author": "7"}, ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			b.WriteString("(supertux-addoninfo")
			for _, key := range Fields {
				val := base[key]
				if o, ok := tt.override[key]; ok {
					val = o
				}
				b.WriteString(" (" + key + " " + val + ")")
			}
			b.WriteString(")")

			_, err := ParseDescriptor([]byte(b.String()))
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestDescriptorValue_RoundTrip(t *testing.T) {
	want := Descriptor{
		ID: "quote-test", Version: 3, Type: "levelset", Title: `The "Best" Levels`,
		Author: `C:\Users\me`, License: "GPL-2.0+",
	}
	got, err := ParseDescriptor([]byte(want.Value().String()))
	if err != nil {
		t.Fatalf("ParseDescriptor error: %v", err)
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&FormatError{Head: "x"}, "format"},
		{&UnknownFieldError{Key: "x"}, "unknown-field"},
		{&TypeError{Field: "version"}, "type"},
		{&SchemaError{}, "schema"},
		{&MissingDescriptorError{Dir: "d"}, "missing-descriptor"},
		{&AmbiguousDescriptorError{Dir: "d"}, "ambiguous-descriptor"},
		{&DuplicateError{ID: "x"}, "duplicate"},
		{&ArchiveError{Path: "p", Err: errors.New("boom")}, "archive"},
		{&IOError{Op: "reading", Path: "p", Err: errors.New("boom")}, "io"},
		{errors.New("plain"), "other"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestNewRecord(t *testing.T) {
	d := &Descriptor{ID: "foo", Version: 1}
	if _, err := NewRecord(d, "", "abc"); err == nil {
		t.Error("expected error for empty url")
	}
	if _, err := NewRecord(d, "http://x/foo_v1.zip", ""); err == nil {
		t.Error("expected error for empty checksum")
	}
	rec, err := NewRecord(d, "http://x/foo_v1.zip", "abc")
	if err != nil {
		t.Fatalf("NewRecord error: %v", err)
	}
	if rec.ID != "foo" || rec.URL != "http://x/foo_v1.zip" || rec.Checksum != "abc" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestArchiveName(t *testing.T) {
	d := &Descriptor{ID: "foo", Version: 12}
	if got := ArchiveName(d); got != "foo_v12.zip" {
		t.Errorf("ArchiveName = %q, want %q", got, "foo_v12.zip")
	}
}
