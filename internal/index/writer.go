package index

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/supertux/addon-index/internal/addon"
	"github.com/supertux/addon-index/internal/checksum"
	"github.com/supertux/addon-index/internal/sexpr"
)

const (
	// DocumentTag heads the index document.
	DocumentTag = "supertux-addons"

	// URLField names the download URL in index blocks.
	URLField = "url"

	generatedComment = ";; automatically generated by build-addon-index"
	eofComment       = ";; EOF ;;"
)

// Writer streams an index document. Begin writes the header, each
// WriteRecord appends one block and flushes it, End closes the document.
// The first write error sticks and is returned by every later call.
type Writer struct {
	bw  *bufio.Writer
	alg checksum.Algorithm
	err error
}

// NewWriter returns a Writer that labels checksums with alg's field name.
func NewWriter(w io.Writer, alg checksum.Algorithm) *Writer {
	return &Writer{bw: bufio.NewWriter(w), alg: alg}
}

// Begin writes the generated-file comment and opens the document.
func (w *Writer) Begin() error {
	w.printf("%s\n", generatedComment)
	w.printf("(%s\n", DocumentTag)
	return w.flush()
}

// WriteRecord writes one supertux-addoninfo block.
func (w *Writer) WriteRecord(rec *addon.Record) error {
	if rec.URL == "" || rec.Checksum == "" {
		return fmt.Errorf("record %s is incomplete", rec.ID)
	}
	w.printf("  (%s\n", addon.InfoTag)
	w.field(addon.FieldID, sexpr.Quote(rec.ID))
	w.field(addon.FieldVersion, strconv.Itoa(rec.Version))
	w.field(addon.FieldType, sexpr.Quote(rec.Type))
	w.field(addon.FieldTitle, sexpr.Quote(rec.Title))
	w.field(addon.FieldAuthor, sexpr.Quote(rec.Author))
	w.field(addon.FieldLicense, sexpr.Quote(rec.License))
	w.field(URLField, sexpr.Quote(rec.URL))
	w.field(w.alg.Key(), sexpr.Quote(rec.Checksum))
	w.printf("   )\n")
	return w.flush()
}

// End closes the document and writes the trailing EOF marker.
func (w *Writer) End() error {
	w.printf(")\n\n%s\n", eofComment)
	return w.flush()
}

func (w *Writer) field(key, value string) {
	w.printf("    (%s %s)\n", key, value)
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.bw, format, args...)
}

func (w *Writer) flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.bw.Flush()
	return w.err
}
