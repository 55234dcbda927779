package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/supertux/addon-index/internal/archive"
	"github.com/supertux/addon-index/internal/branding"
	"github.com/supertux/addon-index/internal/checksum"
)

func TestResolve_Defaults(t *testing.T) {
	v := New()
	v.Set(KeyZipDir, "zips")

	s, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.BaseURL != branding.DefaultBaseURL() {
		t.Errorf("BaseURL = %q, want default", s.BaseURL)
	}
	if s.Checksum != checksum.MD5 {
		t.Errorf("Checksum = %q, want md5", s.Checksum)
	}
	if s.Archiver != archive.KindNative {
		t.Errorf("Archiver = %q, want native", s.Archiver)
	}
	if s.Timeout != archive.DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", s.Timeout, archive.DefaultTimeout)
	}
	if s.Output != "" {
		t.Errorf("Output = %q, want empty (stdout)", s.Output)
	}
}

func TestResolve_ZipDirRequired(t *testing.T) {
	_, err := Resolve(New())
	if err == nil || !strings.Contains(err.Error(), "ADDON_INDEX_ZIPDIR") {
		t.Errorf("error = %v, want a zipdir requirement message", err)
	}
}

func TestResolve_Env(t *testing.T) {
	t.Setenv("ADDON_INDEX_ZIPDIR", "/srv/zips")
	t.Setenv("ADDON_INDEX_CHECKSUM", "sha256")
	t.Setenv("ADDON_INDEX_LOG_FORMAT", "json")
	t.Setenv("ADDON_INDEX_TIMEOUT", "30s")

	s, err := Resolve(New())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.ZipDir != "/srv/zips" || s.Checksum != checksum.SHA256 || s.LogFormat != "json" || s.Timeout != 30*time.Second {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addon-index.yaml")
	content := "zipdir: repository\nurl: https://mirror.example/addons/\narchiver: exec\nsort: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v := New()
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.ZipDir != "repository" || s.BaseURL != "https://mirror.example/addons/" || s.Archiver != archive.KindExec || !s.Sort {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestReadFile_Missing(t *testing.T) {
	if err := ReadFile(New(), filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
	if err := ReadFile(New(), ""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := map[string]map[string]any{
		"bad checksum": {KeyChecksum: "crc32"},
		"bad archiver": {KeyArchiver: "tar"},
		"zero timeout": {KeyTimeout: "0s"},
		"empty url":    {KeyURL: ""},
	}
	for name, overrides := range tests {
		t.Run(name, func(t *testing.T) {
			v := New()
			v.Set(KeyZipDir, "zips")
			for k, val := range overrides {
				v.Set(k, val)
			}
			if _, err := Resolve(v); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}
