package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/porekit/internal/config"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// runFlagValues are the flags shared by commands that select files and
// extractors. Only flags the user changed override the resolved settings.
type runFlagValues struct {
	workers    int
	strict     bool
	extension  string
	extractors []string
	table      string
	format     string
}

func addExtensionFlag(cmd *cobra.Command, v *runFlagValues) {
	cmd.Flags().StringVar(&v.extension, "extension", porekit.FileExtension,
		"File name suffix selecting files to process")
}

func addExtractorsFlag(cmd *cobra.Command, v *runFlagValues) {
	cmd.Flags().StringSliceVarP(&v.extractors, "extractors", "e", nil,
		"Extractors to run, in column order (default: all; see 'porekit extractors').\n"+
			"Pass --extractors= to write identity columns only")
}

// loadProjectConfig loads .env and the project configuration.
// Returns nil config if no porekit.yaml exists and none was requested.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, porekit.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// resolveSettings applies defaults, the project file, the environment and
// changed flags, in that order, and validates the result.
func resolveSettings(cmd *cobra.Command, v *runFlagValues) (config.Settings, error) {
	s := config.Defaults()

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return s, err
	}
	cfg.ApplyTo(&s)

	if err := config.ApplyEnv(&s, os.LookupEnv); err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		s.Workers = v.workers
	}
	if flags.Changed("strict") {
		s.Strict = v.strict
	}
	if flags.Changed("extension") {
		s.Extension = v.extension
	}
	if flags.Changed("extractors") {
		s.Extractors = nonEmpty(v.extractors)
	}
	if flags.Changed("table") {
		s.Table = v.table
	}
	if flags.Changed("format") {
		s.Format = v.format
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// nonEmpty drops blank names so "--extractors=" selects no extractors.
func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
