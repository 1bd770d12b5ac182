package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/porekit/internal/extractor"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var extractorsCmd = &cobra.Command{
	Use:   "extractors",
	Short: "List the available extractors and the columns they produce",
	Args:  cobra.NoArgs,
	RunE:  runExtractors,
}

var extractorsFlags struct {
	json bool
}

func init() {
	rootCmd.AddCommand(extractorsCmd)
	extractorsCmd.Flags().BoolVar(&extractorsFlags.json, "json", false, "Print JSON")
}

type extractorInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

func runExtractors(cmd *cobra.Command, args []string) error {
	catalog := extractor.Default()

	infos := make([]extractorInfo, 0, len(catalog.Names()))
	for _, name := range catalog.Names() {
		d, _ := catalog.Descriptor(name)
		infos = append(infos, extractorInfo{Name: name, Columns: d.Columns()})
	}

	out := cmd.OutOrStdout()
	if extractorsFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	fmt.Fprintf(out, "identity: %s\n", strings.Join(porekit.IdentityFields(), ", "))
	for _, info := range infos {
		fmt.Fprintf(out, "%s: %s\n", info.Name, strings.Join(info.Columns, ", "))
	}
	return nil
}
