package addon

import (
	"errors"
	"fmt"
)

// Record is a descriptor plus the fields computed while packaging it.
// Records only exist for add-ons that were archived and checksummed.
type Record struct {
	Descriptor
	URL      string `json:"url" yaml:"url"`
	Checksum string `json:"checksum" yaml:"checksum"`
}

// ArchiveName returns the archive file name for d: <id>_v<version>.zip.
func ArchiveName(d *Descriptor) string {
	return fmt.Sprintf("%s_v%d.zip", d.ID, d.Version)
}

// NewRecord completes d with its download URL and archive checksum.
func NewRecord(d *Descriptor, url, checksum string) (*Record, error) {
	if d == nil {
		return nil, errors.New("record needs a descriptor")
	}
	if url == "" {
		return nil, fmt.Errorf("record %s: empty url", d.ID)
	}
	if checksum == "" {
		return nil, fmt.Errorf("record %s: empty checksum", d.ID)
	}
	return &Record{Descriptor: *d, URL: url, Checksum: checksum}, nil
}
