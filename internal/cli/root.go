// Package cli implements the captainslog CLI commands.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bashhack/captainslog/internal/config"
	"github.com/bashhack/captainslog/internal/logger"
)

var (
	flagConfig string
	flagDebug  bool
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "captainslog",
	Short: "Keep a daily work log from your git commits",
	Long: `Captainslog maintains per-project daily log files in markdown,
fed automatically by a post-commit hook and manually via btw and wtf.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write debug output to the log file")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "suppress user-facing output")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(btwCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(wtfCmd)
}

// newRuntime builds the logger and configuration shared by every
// subcommand. Callers own the returned logger and should Close it.
func newRuntime() (logger.Logger, *config.Config) {
	var log logger.Logger
	if flagQuiet {
		log = logger.NewWithOutput(flagDebug, config.DefaultLogFile(), flagDebug, io.Discard, io.Discard)
	} else {
		log = logger.NewWithOutput(flagDebug, config.DefaultLogFile(), flagDebug, os.Stdout, os.Stderr)
	}
	cfg := config.Load(flagConfig, log)
	return log, cfg
}
