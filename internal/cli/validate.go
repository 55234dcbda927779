package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supertux/addon-index/internal/config"
	"github.com/supertux/addon-index/internal/index"
	"github.com/supertux/addon-index/internal/logging"
)

var (
	validateStrict bool
	validateIndex  string
	validateSort   bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit non-zero if any add-on is invalid")
	validateCmd.Flags().StringVar(&validateIndex, "index", "", "also check a generated index `FILE`")
	validateCmd.Flags().BoolVar(&validateSort, "sort", false, "check add-ons sorted by directory name")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate DIRECTORY",
	Short: "Check add-on descriptors without building archives",
	Long: `Parse the descriptor of every add-on under DIRECTORY and report the ones
that would be skipped by a build. Nothing is archived and no index is written.

With --index, a previously generated index document is parsed as well and
every record in it must carry a url and a checksum.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(cmd.ErrOrStderr(), settings.GetBool(config.KeyVerbose), settings.GetString(config.KeyLogFormat))
		if err != nil {
			return err
		}

		checks, err := index.Validate(args[0], validateSort)
		if err != nil {
			return err
		}

		invalid := 0
		for _, c := range checks {
			if c.Err != nil {
				invalid++
				logger.Error("invalid add-on", "dir", c.Dir, "err", c.Err)
				continue
			}
			logger.Debug("valid add-on", "dir", c.Dir, "id", c.Descriptor.ID, "version", c.Descriptor.Version)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d add-ons checked, %d invalid\n", len(checks), invalid)

		if validateIndex != "" {
			n, err := checkIndex(validateIndex)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records\n", validateIndex, n)
		}

		if validateStrict && invalid > 0 {
			return fmt.Errorf("%d invalid add-ons", invalid)
		}
		return nil
	},
}

func checkIndex(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening index: %w", err)
	}
	defer f.Close()

	entries, err := index.ReadIndex(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return len(entries), nil
}
