package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/supertux/addon-index/internal/addon"
)

// Archiver packs every file under dir into a zip archive at out. Paths
// stored in the archive are relative to dir.
type Archiver interface {
	Pack(ctx context.Context, dir, out string) error
}

// Kind selects an Archiver implementation.
type Kind string

const (
	KindNative Kind = "native"
	KindExec   Kind = "exec"
)

// DefaultTimeout bounds a single external archiver run.
const DefaultTimeout = 5 * time.Minute

// ParseKind validates an archiver name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindNative, KindExec:
		return k, nil
	default:
		return "", fmt.Errorf("unknown archiver %q (want %s or %s)", s, KindNative, KindExec)
	}
}

// New returns the Archiver for kind. timeout only applies to KindExec; zero
// selects DefaultTimeout.
func New(kind Kind, timeout time.Duration) (Archiver, error) {
	switch kind {
	case KindNative, "":
		return &Native{}, nil
	case KindExec:
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		return &Exec{Timeout: timeout}, nil
	default:
		return nil, fmt.Errorf("unknown archiver %q", kind)
	}
}

// Prepare removes any archive already at out and makes sure its parent
// directory exists. A missing archive is not an error.
func Prepare(out string) error {
	if err := os.Remove(out); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &addon.IOError{Op: "removing old archive", Path: out, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return &addon.IOError{Op: "creating archive directory", Path: filepath.Dir(out), Err: err}
	}
	return nil
}
