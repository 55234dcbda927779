package branding

import (
	"strings"
	"testing"
)

func TestEmbeddedValues(t *testing.T) {
	if CLIName() != "build-addon-index" {
		t.Errorf("CLIName = %q", CLIName())
	}
	if !strings.HasSuffix(DefaultBaseURL(), "/") {
		t.Errorf("DefaultBaseURL %q must end with a slash so archive names append cleanly", DefaultBaseURL())
	}
	if got := EnvVar("zipdir"); got != "ADDON_INDEX_ZIPDIR" {
		t.Errorf("EnvVar(zipdir) = %q", got)
	}
	if got := EnvVar("log-format"); got != "ADDON_INDEX_LOG_FORMAT" {
		t.Errorf("EnvVar(log-format) = %q", got)
	}
}
