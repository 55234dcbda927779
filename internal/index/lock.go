package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the zip directory while a build runs.
const LockFileName = ".build-addon-index.lock"

// ErrLocked means another build holds the zip directory.
var ErrLocked = errors.New("zip directory is locked by another build")

// LockZipDir takes an exclusive lock on dir, creating it if needed. The
// returned function releases the lock.
func LockZipDir(dir string) (func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating zip directory %s: %w", dir, err)
	}

	fl := flock.New(filepath.Join(dir, LockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking zip directory %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", dir, ErrLocked)
	}
	return fl.Unlock, nil
}
