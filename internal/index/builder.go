package index

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/supertux/addon-index/internal/addon"
	"github.com/supertux/addon-index/internal/archive"
	"github.com/supertux/addon-index/internal/checksum"
)

// Builder turns a directory of add-ons into an index document plus one
// archive per add-on.
type Builder struct {
	Archiver  archive.Archiver
	Algorithm checksum.Algorithm
	// BaseURL is prepended verbatim to each archive name.
	BaseURL string
	// ZipDir receives the archives.
	ZipDir string
	// Sort orders add-ons by directory name instead of listing order.
	Sort   bool
	Logger *log.Logger
}

// Result is the outcome for one candidate directory: either Record is set
// or Err is.
type Result struct {
	Candidate
	Record  *addon.Record
	Archive string
	Err     error
}

// OK reports whether the add-on made it into the index.
func (r Result) OK() bool { return r.Err == nil && r.Record != nil }

// Summary collects the per-add-on results of a build.
type Summary struct {
	Results []Result
}

// Built counts add-ons written to the index.
func (s *Summary) Built() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed counts skipped add-ons.
func (s *Summary) Failed() int { return len(s.Results) - s.Built() }

// Build processes every add-on under root and streams the index into w.
// Per-add-on failures are logged and recorded in the Summary; the returned
// error is reserved for failures that stop the whole run, such as an
// unreadable root or an unwritable index.
func (b *Builder) Build(ctx context.Context, root string, w *Writer) (*Summary, error) {
	candidates, err := Discover(root, b.Sort)
	if err != nil {
		return nil, err
	}
	if err := w.Begin(); err != nil {
		return nil, fmt.Errorf("writing index header: %w", err)
	}

	summary := &Summary{}
	seen := make(map[string]string)
	for _, c := range candidates {
		b.logger().Debug("processing add-on", "dir", c.Dir)

		res := b.process(ctx, c, seen)
		summary.Results = append(summary.Results, res)
		if res.Err != nil {
			b.logger().Error("ignoring add-on", "dir", c.Dir, "err", res.Err)
			continue
		}

		if err := w.WriteRecord(res.Record); err != nil {
			return summary, fmt.Errorf("writing index record for %s: %w", res.Record.ID, err)
		}
		seen[res.Record.ID] = c.Dir
		b.logger().Info("added", "id", res.Record.ID, "version", res.Record.Version, "archive", res.Archive)
	}

	if err := w.End(); err != nil {
		return summary, fmt.Errorf("writing index footer: %w", err)
	}
	return summary, nil
}

// process runs the whole per-add-on pipeline. Nothing it does escapes as
// anything but Result.Err.
func (b *Builder) process(ctx context.Context, c Candidate, seen map[string]string) Result {
	res := Result{Candidate: c}

	nfo, err := FindDescriptor(c.Dir)
	if err != nil {
		res.Err = err
		return res
	}

	desc, err := addon.LoadDescriptor(nfo)
	if err != nil {
		res.Err = err
		return res
	}
	if first, dup := seen[desc.ID]; dup {
		res.Err = &addon.DuplicateError{ID: desc.ID, FirstDir: first}
		return res
	}

	name := addon.ArchiveName(desc)
	out := filepath.Join(b.ZipDir, name)
	res.Archive = out

	if err := archive.Prepare(out); err != nil {
		res.Err = err
		return res
	}
	if err := b.Archiver.Pack(ctx, c.Dir, out); err != nil {
		res.Err = err
		return res
	}

	sum, err := b.Algorithm.File(out)
	if err != nil {
		res.Err = &addon.IOError{Op: "checksumming archive", Path: out, Err: err}
		return res
	}

	rec, err := addon.NewRecord(desc, b.BaseURL+name, sum)
	if err != nil {
		res.Err = err
		return res
	}
	res.Record = rec
	return res
}

func (b *Builder) logger() *log.Logger {
	if b.Logger == nil {
		return log.Default()
	}
	return b.Logger
}
