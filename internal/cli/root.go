package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/supertux/addon-index/internal/archive"
	"github.com/supertux/addon-index/internal/branding"
	"github.com/supertux/addon-index/internal/checksum"
	"github.com/supertux/addon-index/internal/config"
	"github.com/supertux/addon-index/internal/index"
	"github.com/supertux/addon-index/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	settings   = config.New()
	configFile string
)

func init() {
	flags := rootCmd.Flags()
	flags.StringP(config.KeyOutput, "o", "", "write the index to `FILE` instead of stdout")
	flags.StringP(config.KeyZipDir, "z", "", "place generated archives in `DIR` (required)")
	flags.StringP(config.KeyURL, "u", branding.DefaultBaseURL(), "base `URL` prepended to each archive name")
	flags.String(config.KeyChecksum, string(checksum.MD5), "checksum algorithm: md5, sha256 or xxhash")
	flags.String(config.KeyArchiver, string(archive.KindNative), "archiver: native (in-process, deterministic) or exec (external zip)")
	flags.Duration(config.KeyTimeout, archive.DefaultTimeout, "time limit for one external zip run")
	flags.String(config.KeyReport, "", "write a YAML build report to `FILE`")
	flags.Bool(config.KeySort, false, "process add-ons sorted by directory name instead of listing order")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&configFile, "config", "", "read settings from a YAML config `FILE`")
	persistent.BoolP(config.KeyVerbose, "v", false, "log every add-on as it is processed")
	persistent.String(config.KeyLogFormat, "text", "diagnostic format: text, json or logfmt")

	for _, fs := range []*pflag.FlagSet{flags, persistent} {
		if err := settings.BindPFlags(fs); err != nil {
			panic(fmt.Sprintf("binding flags: %v", err))
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " DIRECTORY",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` packages every add-on under DIRECTORY into a zip archive and
writes an index document listing each valid add-on with its download URL
and checksum.

DIRECTORY holds one subdirectory per add-on, each with exactly one .nfo
descriptor. Add-ons that fail to build are reported on stderr and left out
of the index; the run still succeeds.

A DIRECTORY named like a subcommand (validate, version, help, completion)
must come after "--" or be written as ./validate.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.ReadFile(settings, configFile)
	},
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := config.Resolve(settings)
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), s.Verbose, s.LogFormat)
	if err != nil {
		return err
	}

	source := args[0]
	if info, err := os.Stat(source); err != nil {
		return fmt.Errorf("reading source directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", source)
	}

	unlock, err := index.LockZipDir(s.ZipDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Warn("releasing zip directory lock", "zipdir", s.ZipDir, "err", err)
		}
	}()

	arch, err := archive.New(s.Archiver, s.Timeout)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var outFile *os.File
	if s.Output != "" {
		outFile, err = os.Create(s.Output)
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
		defer outFile.Close()
		out = outFile
	}

	b := &index.Builder{
		Archiver:  arch,
		Algorithm: s.Checksum,
		BaseURL:   s.BaseURL,
		ZipDir:    s.ZipDir,
		Sort:      s.Sort,
		Logger:    logger,
	}
	summary, err := b.Build(cmd.Context(), source, index.NewWriter(out, s.Checksum))
	if err != nil {
		return err
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			return fmt.Errorf("closing output: %w", err)
		}
	}

	logger.Info("index complete", "built", summary.Built(), "failed", summary.Failed())

	if s.Report != "" {
		report := index.NewReport(summary, source, s.ZipDir, s.Checksum, time.Now())
		if err := index.WriteReport(s.Report, report); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// Main runs the CLI and returns the process exit code. Fatal errors are
// printed to stderr.
func Main(version, commit, date string) int {
	if err := Execute(version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", branding.CLIName(), err)
		return 1
	}
	return 0
}
