package index

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/supertux/addon-index/internal/addon"
	"github.com/supertux/addon-index/internal/checksum"
)

// Report status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Report is the machine-readable summary of a build.
type Report struct {
	GeneratedAt time.Time     `yaml:"generated_at"`
	Source      string        `yaml:"source"`
	ZipDir      string        `yaml:"zipdir"`
	Checksum    string        `yaml:"checksum"`
	Built       int           `yaml:"built"`
	Failed      int           `yaml:"failed"`
	Addons      []ReportEntry `yaml:"addons"`
}

// ReportEntry describes one candidate directory.
type ReportEntry struct {
	Dir       string `yaml:"dir"`
	Status    string `yaml:"status"`
	ID        string `yaml:"id,omitempty"`
	Version   int    `yaml:"version,omitempty"`
	Archive   string `yaml:"archive,omitempty"`
	URL       string `yaml:"url,omitempty"`
	Checksum  string `yaml:"checksum,omitempty"`
	ErrorKind string `yaml:"error_kind,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

// NewReport summarizes a finished build.
func NewReport(s *Summary, source, zipDir string, alg checksum.Algorithm, now time.Time) *Report {
	r := &Report{
		GeneratedAt: now.UTC(),
		Source:      source,
		ZipDir:      zipDir,
		Checksum:    string(alg),
		Built:       s.Built(),
		Failed:      s.Failed(),
	}
	for _, res := range s.Results {
		e := ReportEntry{Dir: res.Dir}
		if res.OK() {
			e.Status = StatusOK
			e.ID = res.Record.ID
			e.Version = res.Record.Version
			e.Archive = res.Archive
			e.URL = res.Record.URL
			e.Checksum = res.Record.Checksum
		} else {
			e.Status = StatusFailed
			e.ErrorKind = addon.Kind(res.Err)
			if res.Err != nil {
				e.Error = res.Err.Error()
			}
		}
		r.Addons = append(r.Addons, e)
	}
	return r
}

// WriteReport writes r as YAML to path.
func WriteReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}
