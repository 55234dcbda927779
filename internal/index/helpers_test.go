package index

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// descriptorFor renders a valid descriptor for id at version.
func descriptorFor(id string, version int) string {
	return fmt.Sprintf(`(supertux-addoninfo
  (id %q)
  (version %d)
  (type "level")
  (title "%s title")
  (author "A")
  (license "GPL"))
`, id, version, id)
}

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// testLogger captures log output for assertions on diagnostics.
func testLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return l, &buf
}
