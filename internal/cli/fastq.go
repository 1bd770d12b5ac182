package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/internal/files/scanner"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var fastqCmd = &cobra.Command{
	Use:   "fastq <root>",
	Short: "Write the basecalled FASTQ records stored in fast5 files",
	Long: `Fastq writes the FASTQ records stored by the latest basecall analysis of
every valid fast5 file under root. By default every strand present is
written, in template, complement, 2D order.

Examples:
  porekit fastq ./run42 --strand 2D -o run42_2d.fastq
  porekit fastq ./run42 --strand template --strand complement > reads.fastq`,
	Args: cobra.ExactArgs(1),
	RunE: runFastq,
}

var fastqFlags struct {
	runFlagValues
	strands []string
	output  string
}

func init() {
	rootCmd.AddCommand(fastqCmd)
	fastqCmd.Flags().StringSliceVar(&fastqFlags.strands, "strand", nil,
		"Strands to write: template|complement|2D (repeatable; default: all)")
	fastqCmd.Flags().StringVarP(&fastqFlags.output, "output", "o", "", "Output file (default: stdout)")
	addExtensionFlag(fastqCmd, &fastqFlags.runFlagValues)
}

func runFastq(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd, &fastqFlags.runFlagValues)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	strands := make([]fast5.Strand, 0, len(fastqFlags.strands))
	for _, s := range fastqFlags.strands {
		st, err := fast5.ParseStrand(s)
		if err != nil {
			return fmt.Errorf("%w: %w", porekit.ErrInvalidConfig, err)
		}
		strands = append(strands, st)
	}

	var out io.Writer = cmd.OutOrStdout()
	if fastqFlags.output != "" {
		f, err := os.Create(fastqFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w: %w", fastqFlags.output, err, porekit.ErrExport)
		}
		defer f.Close()
		out = f
	}

	locator := scanner.NewLocator(settings.Extension)
	written := 0
	for f, err := range fast5.OpenValid(locator.Discover(args[0]), openerFactory()) {
		if err != nil {
			return err
		}
		text, ferr := fast5.FASTQ(f.Container, strands...)
		f.Container.Close()
		if ferr != nil {
			logger.Warn("%s: %v", f.Path, ferr)
			continue
		}
		if text == "" {
			logger.Verbose("%s: no FASTQ for the requested strands", f.Path)
			continue
		}
		if _, err := io.WriteString(out, text); err != nil {
			return fmt.Errorf("failed to write FASTQ: %w: %w", err, porekit.ErrExport)
		}
		written++
	}
	logger.Verbose("wrote FASTQ from %d files", written)
	return nil
}
