// Package checksum computes the content digests published in the index.
package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Algorithm names a digest. Its string form is also the field name used for
// the digest in index blocks.
type Algorithm string

const (
	// MD5 is what the SuperTux add-on manager verifies downloads against.
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
	// XXHash is the 64-bit xxHash digest, for change detection only.
	XXHash Algorithm = "xxhash"
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{MD5, SHA256, XXHash}

// Parse validates an algorithm name.
func Parse(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown checksum algorithm %q (want md5, sha256 or xxhash)", s)
}

// Key is the index field that carries this digest.
func (a Algorithm) Key() string { return string(a) }

// New returns a fresh hash for a.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case XXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("unknown checksum algorithm %q", string(a))
	}
}

// Reader digests everything read from r and returns lowercase hex.
func (a Algorithm) Reader(r io.Reader) (string, error) {
	h, err := a.New()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File digests the file at path.
func (a Algorithm) File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sum, err := a.Reader(f)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return sum, nil
}
