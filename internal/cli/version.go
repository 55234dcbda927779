package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supertux/addon-index/internal/archive"
	"github.com/supertux/addon-index/internal/branding"
	"github.com/supertux/addon-index/internal/checksum"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print build and capability info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo also lists what this binary can produce, so release scripts
// can check for a checksum algorithm before passing --checksum.
type versionInfo struct {
	Version    string               `json:"version"`
	Commit     string               `json:"commit"`
	Date       string               `json:"date"`
	DefaultURL string               `json:"default_url"`
	Checksums  []checksum.Algorithm `json:"checksums"`
	Archivers  []archive.Kind       `json:"archivers"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch {
		case versionShort:
			fmt.Fprintln(out, buildVersion)
		case versionJSON:
			data, err := json.MarshalIndent(versionInfo{
				Version:    buildVersion,
				Commit:     buildCommit,
				Date:       buildDate,
				DefaultURL: branding.DefaultBaseURL(),
				Checksums:  checksum.Algorithms,
				Archivers:  []archive.Kind{archive.KindNative, archive.KindExec},
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			fmt.Fprintf(out, "%s %s (commit %s, built %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		}
		return nil
	},
}
