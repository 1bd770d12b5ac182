package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/porekit/internal/aggregate"
	"github.com/vvka-141/porekit/internal/export"
	"github.com/vvka-141/porekit/internal/extractor"
	"github.com/vvka-141/porekit/internal/files/scanner"
	"github.com/vvka-141/porekit/internal/tui"
)

var collectCmd = &cobra.Command{
	Use:   "collect <root> <output>",
	Short: "Aggregate metadata of every fast5 file under a directory",
	Long: `Collect finds every fast5 file under root, skips files missing required
groups, runs the selected extractors on the rest and writes one row per file.

Arguments:
  root      Directory to search recursively
  output    Destination; the format follows from its form:
              -                       CSV on standard output
              reads.csv / reads.tsv   delimited text
              reads.jsonl             JSON lines
              reads.db                SQLite database
              postgres://...          PostgreSQL database

Files that cannot be opened still produce a row holding only their file
name columns. With --strict, the first extractor failure aborts the run;
otherwise the failing extractor's columns are left missing for that file.

Examples:
  # All extractors, sequential, CSV to stdout
  porekit collect ./run42 -

  # Eight workers into SQLite, channel and read columns only
  porekit collect ./run42 reads.db -w 8 -e channel,read

  # Append to a PostgreSQL table
  porekit collect ./run42 postgres://porekit@db/nanopore --table minion`,
	Args: cobra.ExactArgs(2),
	RunE: runCollect,
}

var collectFlags runFlagValues

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().IntVarP(&collectFlags.workers, "workers", "w", 1,
		"Number of files processed concurrently (1 keeps discovery order)")
	collectCmd.Flags().BoolVar(&collectFlags.strict, "strict", false,
		"Abort on the first extraction failure")
	collectCmd.Flags().StringVar(&collectFlags.table, "table", "reads",
		"Table name for database outputs")
	collectCmd.Flags().StringVar(&collectFlags.format, "format", "",
		"Output format: csv|tsv|jsonl|sqlite|postgres (default: from output)")
	addExtensionFlag(collectCmd, &collectFlags)
	addExtractorsFlag(collectCmd, &collectFlags)
}

func runCollect(cmd *cobra.Command, args []string) error {
	root, dest := args[0], args[1]
	logger := newLogger(cmd)

	settings, err := resolveSettings(cmd, &collectFlags)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	aggregator := aggregate.New(
		scanner.NewLocator(settings.Extension),
		openerFactory(),
		extractor.Default(),
		logger,
	)

	reporter := tui.NewReporter(tui.DetectMode(), cmd.ErrOrStderr(), cancel)
	result, err := aggregator.Run(ctx, aggregate.Options{
		Root:       root,
		Extractors: settings.Extractors,
		Workers:    settings.Workers,
		Strict:     settings.Strict,
		Progress:   reporter.Report,
	})
	reporter.Finish()
	if err != nil {
		return err
	}

	sink, err := export.Open(ctx, dest, export.Options{
		Table:  settings.Table,
		Format: format,
		Logger: logger,
		Stdout: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	if err := sink.Write(ctx, result); err != nil {
		sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	printSummary(cmd.ErrOrStderr(), result, dest)
	return nil
}

func printSummary(w io.Writer, result *aggregate.Result, dest string) {
	s := result.Stats
	fmt.Fprintln(w, tui.TitleStyle.Render(tui.SymbolCheck+" Collected "+result.Root))
	fmt.Fprintln(w, tui.LabelStyle.Render("run")+result.RunID.String())
	fmt.Fprintln(w, tui.LabelStyle.Render("discovered")+fmt.Sprint(s.Discovered))
	fmt.Fprintln(w, tui.LabelStyle.Render("rows")+fmt.Sprintf("%d x %d columns", result.Table.Len(), result.Table.Schema.Len()))
	if s.Skipped > 0 {
		fmt.Fprintln(w, tui.LabelStyle.Render("skipped")+tui.WarningStyle.Render(fmt.Sprintf("%d (failed sanity check)", s.Skipped)))
	}
	if s.Unopenable > 0 {
		fmt.Fprintln(w, tui.LabelStyle.Render("unopenable")+tui.WarningStyle.Render(fmt.Sprint(s.Unopenable)))
	}
	fmt.Fprintln(w, tui.LabelStyle.Render("elapsed")+s.Duration.Round(time.Millisecond).String())
	if dest != export.Stdout {
		fmt.Fprintln(w, tui.LabelStyle.Render("output")+export.Redact(dest))
	}
}
