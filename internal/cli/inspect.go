package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vvka-141/porekit/internal/extractor"
	"github.com/vvka-141/porekit/internal/record"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the metadata row porekit would produce for one file",
	Long: `Inspect runs the selected extractors on a single file and prints the
resulting columns in table order. The sanity check is not applied, so
incomplete files show whatever metadata they do carry. A file that cannot be
opened still prints its identity columns before the error is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var inspectFlags struct {
	runFlagValues
	json bool
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectFlags.strict, "strict", false,
		"Fail instead of leaving a failing extractor's columns missing")
	inspectCmd.Flags().BoolVar(&inspectFlags.json, "json", false, "Print a JSON object")
	addExtractorsFlag(inspectCmd, &inspectFlags.runFlagValues)
}

func runInspect(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd, &inspectFlags.runFlagValues)
	if err != nil {
		return err
	}

	extractors, err := extractor.Default().Build(settings.Extractors)
	if err != nil {
		return err
	}
	schema, err := porekit.SchemaFor(extractors)
	if err != nil {
		return err
	}

	builder := record.NewBuilder(openerFactory(),
		record.WithStrict(settings.Strict),
		record.WithLogger(newLogger(cmd)),
	)
	rec, buildErr := builder.Build(args[0], extractors)
	if rec == nil {
		return buildErr
	}
	if err := printRow(cmd, schema, schema.Conform(rec)); err != nil {
		return err
	}
	return buildErr
}

// printRow writes one conformed row as a JSON object or an aligned listing.
func printRow(cmd *cobra.Command, schema porekit.Schema, row []any) error {
	out := cmd.OutOrStdout()
	if inspectFlags.json {
		var b strings.Builder
		b.WriteString("{")
		for i, col := range schema.Columns() {
			v := row[i]
			if porekit.IsMissing(v) {
				v = nil
			}
			key, _ := json.Marshal(col)
			value, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", col, err)
			}
			if i > 0 {
				b.WriteString(",")
			}
			b.Write(key)
			b.WriteString(":")
			b.Write(value)
		}
		b.WriteString("}")
		fmt.Fprintln(out, b.String())
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, col := range schema.Columns() {
		fmt.Fprintf(tw, "%s\t%v\n", col, row[i])
	}
	return tw.Flush()
}
