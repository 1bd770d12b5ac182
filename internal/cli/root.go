package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/porekit/internal/container"
	"github.com/vvka-141/porekit/internal/logging"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var rootCmd = &cobra.Command{
	Use:   "porekit",
	Short: "Collect nanopore fast5 metadata into one table",
	Long: `porekit walks a directory tree of fast5 files, reads the channel, tracking,
read and basecall metadata each file carries, and writes one row per file to
CSV, TSV, JSON lines, SQLite or PostgreSQL.

Files missing the groups every fast5 file must have are skipped. Fields a
file does not carry are written as missing values (NA, null or NULL).

Configuration:
  Defaults come from porekit.yaml in the working directory (or --config),
  then from POREKIT_WORKERS and POREKIT_STRICT (a .env file is read first),
  then from command-line flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (workers, extractors, config file)
  11 - Directory traversal failed
  12 - Extraction failed in strict mode
  13 - Writing the output failed`,
	SilenceUsage: true,
}

// openerFactory builds the container opener used by every command.
var openerFactory = func() porekit.ContainerOpener {
	return container.NewH5Opener()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to porekit.yaml (default: ./porekit.yaml if present)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func newLogger(cmd *cobra.Command) porekit.Logger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}
