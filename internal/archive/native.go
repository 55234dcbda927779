package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/supertux/addon-index/internal/addon"
)

// epoch is the modification time stamped on every entry; it is the earliest
// time the zip format can represent.
var epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// Native writes deterministic zip archives without external tools. Entries
// are added in lexical path order with a fixed timestamp and normalized
// permissions, so identical directory contents produce identical archives.
type Native struct{}

type entry struct {
	name string // slash-separated, relative to the add-on root
	path string
	dir  bool
}

// Pack implements Archiver.
func (n *Native) Pack(ctx context.Context, dir, out string) error {
	entries, err := collect(dir, out)
	if err != nil {
		return &addon.ArchiveError{Path: out, Err: err}
	}

	f, err := os.Create(out)
	if err != nil {
		return &addon.IOError{Op: "creating archive", Path: out, Err: err}
	}

	if err := n.write(ctx, f, entries); err != nil {
		f.Close()
		os.Remove(out)
		return &addon.ArchiveError{Path: out, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(out)
		return &addon.IOError{Op: "closing archive", Path: out, Err: err}
	}
	return nil
}

func (n *Native) write(ctx context.Context, w io.Writer, entries []entry) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addEntry(zw, e); err != nil {
			return err
		}
	}
	return zw.Close()
}

func addEntry(zw *zip.Writer, e entry) error {
	hdr := &zip.FileHeader{
		Name:     e.name,
		Modified: epoch,
	}
	if e.dir {
		hdr.Name += "/"
		hdr.Method = zip.Store
		hdr.SetMode(fs.ModeDir | dirMode)
		_, err := zw.CreateHeader(hdr)
		return err
	}

	hdr.Method = zip.Deflate
	hdr.SetMode(fileMode)
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", e.name, err)
	}

	src, err := os.Open(e.path)
	if err != nil {
		return err
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compressing %s: %w", e.name, err)
	}
	return nil
}

// collect walks dir in lexical order and returns the entries to archive.
// Symbolic links are followed, the add-on directory itself included, so a
// link stores its target's content under the link's name. A dangling link or
// a directory linking back to one of its ancestors fails the walk. Sockets,
// devices and pipes are skipped, as is the output archive itself when it
// lives inside dir.
func collect(dir, out string) ([]entry, error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	c := &collector{self: realPath(out)}
	if err := c.walk(root, "", map[string]bool{root: true}); err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return c.entries, nil
}

type collector struct {
	self    string
	entries []entry
}

func (c *collector) walk(path, prefix string, ancestors map[string]bool) error {
	items, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, item := range items {
		p := filepath.Join(path, item.Name())
		name := prefix + item.Name()

		mode := item.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(p)
			if err != nil {
				return fmt.Errorf("following link %s: %w", name, err)
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			resolved, err := filepath.EvalSymlinks(p)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", name, err)
			}
			if ancestors[resolved] {
				return fmt.Errorf("link cycle at %s", name)
			}
			c.entries = append(c.entries, entry{name: name, path: p, dir: true})
			ancestors[resolved] = true
			err = c.walk(resolved, name+"/", ancestors)
			delete(ancestors, resolved)
			if err != nil {
				return err
			}
		case mode.IsRegular():
			if c.self != "" && realPath(p) == c.self {
				continue
			}
			c.entries = append(c.entries, entry{name: name, path: p})
		}
	}
	return nil
}

// realPath returns the absolute, link-free form of path. The last element
// need not exist yet.
func realPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	if parent, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(parent, filepath.Base(abs))
	}
	return abs
}
