package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/supertux/addon-index/internal/addon"
)

// Candidate is a directory under the source root that should hold one add-on.
type Candidate struct {
	Name string // directory name
	Dir  string // path to the directory
}

// Discover lists the immediate subdirectories of root. Without sorted the
// order is whatever the filesystem returns, which varies between
// filesystems. Non-directory entries are skipped.
func Discover(root string, sorted bool) ([]Candidate, error) {
	f, err := os.Open(root)
	if err != nil {
		return nil, fmt.Errorf("opening source directory: %w", err)
	}
	defer f.Close()

	// File.ReadDir keeps directory order; os.ReadDir would sort.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", root, err)
	}

	var result []Candidate
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		if !isDir(e, path) {
			continue
		}
		result = append(result, Candidate{Name: e.Name(), Dir: path})
	}

	if sorted {
		sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	}
	return result, nil
}

// isDir follows symlinks so linked add-on directories are included.
func isDir(e os.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FindDescriptor returns the single descriptor file in dir.
func FindDescriptor(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &addon.IOError{Op: "reading add-on directory", Path: dir, Err: err}
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), addon.DescriptorExt) {
			continue
		}
		matches = append(matches, e.Name())
	}

	switch len(matches) {
	case 0:
		return "", &addon.MissingDescriptorError{Dir: dir}
	case 1:
		return filepath.Join(dir, matches[0]), nil
	default:
		return "", &addon.AmbiguousDescriptorError{Dir: dir, Matches: matches}
	}
}
