package index

import (
	"github.com/supertux/addon-index/internal/addon"
)

// Check is the outcome of validating one candidate's descriptor.
type Check struct {
	Candidate
	Descriptor *addon.Descriptor
	Err        error
}

// Validate parses every add-on descriptor under root without archiving
// anything. Duplicate ids are reported on the later directory.
func Validate(root string, sorted bool) ([]Check, error) {
	candidates, err := Discover(root, sorted)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	checks := make([]Check, 0, len(candidates))
	for _, c := range candidates {
		check := Check{Candidate: c}
		nfo, err := FindDescriptor(c.Dir)
		if err == nil {
			check.Descriptor, err = addon.LoadDescriptor(nfo)
		}
		if err == nil {
			if first, dup := seen[check.Descriptor.ID]; dup {
				err = &addon.DuplicateError{ID: check.Descriptor.ID, FirstDir: first}
				check.Descriptor = nil
			} else {
				seen[check.Descriptor.ID] = c.Dir
			}
		}
		check.Err = err
		checks = append(checks, check)
	}
	return checks, nil
}
