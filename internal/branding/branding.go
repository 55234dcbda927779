// Package branding provides compile-time identity values for the CLI.
//
// Values come from branding.yaml, baked into the binary with //go:embed, so
// a mirror of the add-on repository can rename the tool and change its
// default download location without touching code. Keys missing from the
// file keep the SuperTux values below.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	EnvPrefix      string `yaml:"env_prefix"`
	DefaultBaseURL string `yaml:"default_base_url"`
}

var supertux = brand{
	CLIName:        "build-addon-index",
	DisplayName:    "SuperTux Add-on Index",
	Description:    "Build the SuperTux add-on index and archives",
	EnvPrefix:      "ADDON_INDEX",
	DefaultBaseURL: "https://raw.githubusercontent.com/SuperTux/addons/master/repository/",
}

var current = sync.OnceValue(func() brand {
	b := supertux
	_ = yaml.Unmarshal(rawBranding, &b)
	return b
})

// CLIName returns the root command name (e.g., "build-addon-index").
func CLIName() string { return current().CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { return current().DisplayName }

// Description returns the short product description.
func Description() string { return current().Description }

// EnvPrefix returns the environment variable prefix (e.g., "ADDON_INDEX").
func EnvPrefix() string { return current().EnvPrefix }

// DefaultBaseURL returns the download prefix used when --url is not given.
func DefaultBaseURL() string { return current().DefaultBaseURL }

// EnvVar returns a fully qualified env var name for a setting key, e.g.
// EnvVar("log-format") → "ADDON_INDEX_LOG_FORMAT".
func EnvVar(key string) string {
	return current().EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}
