package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/supertux/addon-index/internal/archive"
	"github.com/supertux/addon-index/internal/branding"
	"github.com/supertux/addon-index/internal/checksum"
)

// Setting keys. Flags bind to the same names.
const (
	KeyOutput    = "output"
	KeyZipDir    = "zipdir"
	KeyURL       = "url"
	KeyChecksum  = "checksum"
	KeyArchiver  = "archiver"
	KeyTimeout   = "timeout"
	KeyReport    = "report"
	KeySort      = "sort"
	KeyVerbose   = "verbose"
	KeyLogFormat = "log-format"
)

// Settings are the resolved options of one build.
type Settings struct {
	Output    string
	ZipDir    string
	BaseURL   string
	Checksum  checksum.Algorithm
	Archiver  archive.Kind
	Timeout   time.Duration
	Report    string
	Sort      bool
	Verbose   bool
	LogFormat string
}

// New returns a Viper instance with defaults and environment lookup set up.
// ADDON_INDEX_LOG_FORMAT maps to the log-format key.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyURL, branding.DefaultBaseURL())
	v.SetDefault(KeyChecksum, string(checksum.MD5))
	v.SetDefault(KeyArchiver, string(archive.KindNative))
	v.SetDefault(KeyTimeout, archive.DefaultTimeout)
	v.SetDefault(KeyLogFormat, "text")
	return v
}

// ReadFile merges a YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Resolve reads and validates the build settings from v.
func Resolve(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Output:    v.GetString(KeyOutput),
		ZipDir:    v.GetString(KeyZipDir),
		BaseURL:   v.GetString(KeyURL),
		Timeout:   v.GetDuration(KeyTimeout),
		Report:    v.GetString(KeyReport),
		Sort:      v.GetBool(KeySort),
		Verbose:   v.GetBool(KeyVerbose),
		LogFormat: v.GetString(KeyLogFormat),
	}

	if s.ZipDir == "" {
		return nil, fmt.Errorf("zip directory is required (--zipdir or %s)", branding.EnvVar(KeyZipDir))
	}
	if s.BaseURL == "" {
		return nil, fmt.Errorf("base url must not be empty")
	}
	if s.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}

	alg, err := checksum.Parse(v.GetString(KeyChecksum))
	if err != nil {
		return nil, err
	}
	s.Checksum = alg

	kind, err := archive.ParseKind(v.GetString(KeyArchiver))
	if err != nil {
		return nil, err
	}
	s.Archiver = kind

	return s, nil
}
