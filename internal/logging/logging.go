// Package logging builds the diagnostic logger. Diagnostics always go to a
// separate stream from the generated index so a failed add-on never ends up
// inside the document.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/supertux/addon-index/internal/branding"
)

// New returns a logger writing to w in format ("text", "json" or
// "logfmt"). verbose enables debug messages.
func New(w io.Writer, verbose bool, format string) (*log.Logger, error) {
	opts := log.Options{
		Prefix: branding.CLIName(),
		Level:  log.InfoLevel,
	}
	if verbose {
		opts.Level = log.DebugLevel
	}

	switch format {
	case "", "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q (want text, json or logfmt)", format)
	}

	return log.NewWithOptions(w, opts), nil
}
