package index

import (
	"fmt"
	"io"

	"github.com/supertux/addon-index/internal/addon"
	"github.com/supertux/addon-index/internal/checksum"
	"github.com/supertux/addon-index/internal/sexpr"
)

// Entry is one record read back from an index document.
type Entry struct {
	addon.Record
	Algorithm checksum.Algorithm
}

// ReadIndex parses an index document produced by Writer. Every block must
// be a complete record with a url and a checksum field.
func ReadIndex(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	exprs, err := sexpr.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	if len(exprs) != 1 {
		return nil, fmt.Errorf("index must hold exactly one document, found %d", len(exprs))
	}
	doc := exprs[0]
	if head, ok := doc.Head(); !ok || !head.IsSymbol(DocumentTag) {
		return nil, fmt.Errorf("not a %s document: %s", DocumentTag, doc.String())
	}

	var entries []Entry
	for i, block := range doc.List[1:] {
		e, err := readEntry(block)
		if err != nil {
			return nil, fmt.Errorf("index record %d (line %d): %w", i+1, block.Line, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// readEntry splits the computed url and checksum fields off a block and
// hands the rest to the descriptor parser.
func readEntry(block sexpr.Value) (Entry, error) {
	if block.Kind != sexpr.KindList {
		return Entry{}, fmt.Errorf("expected a list, got %s", block.String())
	}

	var e Entry
	descriptor := sexpr.Value{Kind: sexpr.KindList, Line: block.Line, Col: block.Col}
	for i, item := range block.List {
		if i > 0 && item.Kind == sexpr.KindList && len(item.List) == 2 && item.List[1].Kind == sexpr.KindString {
			key := item.List[0]
			if key.IsSymbol(URLField) {
				e.URL = item.List[1].Text
				continue
			}
			if key.Kind == sexpr.KindSymbol {
				if alg, err := checksum.Parse(key.Text); err == nil {
					e.Algorithm = alg
					e.Checksum = item.List[1].Text
					continue
				}
			}
		}
		descriptor.List = append(descriptor.List, item)
	}

	d, err := addon.DescriptorFromValue(descriptor)
	if err != nil {
		return Entry{}, err
	}
	rec, err := addon.NewRecord(d, e.URL, e.Checksum)
	if err != nil {
		return Entry{}, err
	}
	e.Record = *rec
	return e, nil
}
