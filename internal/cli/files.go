package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/internal/files/scanner"
)

var filesCmd = &cobra.Command{
	Use:   "files <root>",
	Short: "List the fast5 files under a directory that pass the sanity check",
	Long: `Files prints, one per line, the path of every fast5 file under root that
opens and carries the groups every fast5 file must have. Unreadable and
incomplete files are left out.`,
	Args: cobra.ExactArgs(1),
	RunE: runFiles,
}

var filesFlags runFlagValues

func init() {
	rootCmd.AddCommand(filesCmd)
	addExtensionFlag(filesCmd, &filesFlags)
}

func runFiles(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd, &filesFlags)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	locator := scanner.NewLocator(settings.Extension)
	count := 0
	for f, err := range fast5.OpenValid(locator.Discover(args[0]), openerFactory()) {
		if err != nil {
			return err
		}
		if cerr := f.Container.Close(); cerr != nil {
			logger.Verbose("close %s: %v", f.Path, cerr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), f.Path)
		count++
	}
	logger.Verbose("%d valid files under %s", count, args[0])
	return nil
}
