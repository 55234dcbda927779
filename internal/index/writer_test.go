package index

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/supertux/addon-index/internal/addon"
	"github.com/supertux/addon-index/internal/checksum"
)

func sampleRecord() *addon.Record {
	return &addon.Record{
		Descriptor: addon.Descriptor{
			ID: "foo", Version: 1, Type: "level", Title: `Foo "the" Level`, Author: "A", License: "GPL",
		},
		URL:      "https://example.org/repo/foo_v1.zip",
		Checksum: "0123456789abcdef0123456789abcdef",
	}
}

func TestWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, checksum.MD5)
	if err := w.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := w.WriteRecord(sampleRecord()); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := w.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	want := `;; automatically generated by build-addon-index
(supertux-addons
  (supertux-addoninfo
    (id "foo")
    (version 1)
    (type "level")
    (title "Foo \"the\" Level")
    (author "A")
    (license "GPL")
    (url "https://example.org/repo/foo_v1.zip")
    (md5 "0123456789abcdef0123456789abcdef")
   )
)

;; EOF ;;
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_EmptyIndex(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, checksum.SHA256)
	if err := w.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := w.End(); err != nil {
		t.Fatal(err)
	}
	entries, err := ReadIndex(&buf)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestWriter_StreamsEachRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, checksum.MD5)
	if err := w.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteRecord(sampleRecord()); err != nil {
		t.Fatal(err)
	}
	// Without End the record must already be in the underlying writer.
	if !strings.Contains(buf.String(), `(id "foo")`) {
		t.Errorf("record not flushed before End:\n%s", buf.String())
	}
}

func TestWriter_RejectsIncompleteRecord(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, checksum.MD5)
	rec := sampleRecord()
	rec.Checksum = ""
	if err := w.WriteRecord(rec); err == nil {
		t.Error("expected error for record without checksum")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_StickyError(t *testing.T) {
	w := NewWriter(failingWriter{}, checksum.MD5)
	if err := w.Begin(); err == nil {
		t.Fatal("expected Begin to fail")
	}
	if err := w.WriteRecord(sampleRecord()); err == nil {
		t.Error("expected WriteRecord to keep failing")
	}
}

func TestReadIndex_RoundTrip(t *testing.T) {
	for _, alg := range checksum.Algorithms {
		t.Run(string(alg), func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, alg)
			rec := sampleRecord()
			if err := w.Begin(); err != nil {
				t.Fatal(err)
			}
			if err := w.WriteRecord(rec); err != nil {
				t.Fatal(err)
			}
			if err := w.End(); err != nil {
				t.Fatal(err)
			}

			entries, err := ReadIndex(&buf)
			if err != nil {
				t.Fatalf("ReadIndex: %v", err)
			}
			want := []Entry{{Record: *rec, Algorithm: alg}}
			if diff := cmp.Diff(want, entries); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadIndex_Errors(t *testing.T) {
	tests := map[string]string{
		"wrong document tag": `(something-else)`,
		"two documents":      `(supertux-addons) (supertux-addons)`,
		"missing checksum": `(supertux-addons (supertux-addoninfo (id "a") (version 1) (type "t")
			(title "T") (author "A") (license "L") (url "u")))`,
		"missing url": `(supertux-addons (supertux-addoninfo (id "a") (version 1) (type "t")
			(title "T") (author "A") (license "L") (md5 "x")))`,
		"unknown key": `(supertux-addons (supertux-addoninfo (id "a") (version 1) (type "t")
			(title "T") (author "A") (license "L") (url "u") (md5 "x") (extra "y")))`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadIndex(strings.NewReader(doc)); err == nil {
				t.Errorf("ReadIndex(%s) expected error", name)
			}
		})
	}
}
