package porekit

import (
	"fmt"
)

// PartialRecord maps an extractor's declared keys to decoded values.
// An absent key means the value is not available for this file.
type PartialRecord map[string]any

// ExtractorDescriptor is the static identity of an extractor variant.
type ExtractorDescriptor struct {
	// BaseName namespaces the extractor's columns. Unique within a run.
	BaseName string

	// ExpectedKeys is the closed, ordered set of fields Run may emit.
	ExpectedKeys []string
}

// Column returns the table column for one of the descriptor's keys.
func (d ExtractorDescriptor) Column(key string) string {
	return d.BaseName + "_" + key
}

// Columns returns the table columns for every declared key, in declaration order.
func (d ExtractorDescriptor) Columns() []string {
	cols := make([]string, len(d.ExpectedKeys))
	for i, k := range d.ExpectedKeys {
		cols[i] = d.Column(k)
	}
	return cols
}

// Validate checks the descriptor is usable: a non-empty base name and
// non-empty, unique keys.
func (d ExtractorDescriptor) Validate() error {
	if d.BaseName == "" {
		return fmt.Errorf("extractor has empty base name: %w", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(d.ExpectedKeys))
	for _, k := range d.ExpectedKeys {
		if k == "" {
			return fmt.Errorf("extractor %q declares an empty key: %w", d.BaseName, ErrInvalidConfig)
		}
		if seen[k] {
			return fmt.Errorf("extractor %q declares key %q twice: %w", d.BaseName, k, ErrInvalidConfig)
		}
		seen[k] = true
	}
	return nil
}

// Extractor reads one namespace of fields from an open container.
//
// Run must not depend on state accumulated from earlier files: the output for
// one container is independent of which containers the same instance saw before.
// Every key Run returns must be listed in Descriptor().ExpectedKeys.
type Extractor interface {
	Descriptor() ExtractorDescriptor

	// Run returns the fields available in c. A failure is reported as an
	// error wrapping ErrExtraction and means "no output from this extractor".
	Run(c Container) (PartialRecord, error)
}

// ExtractorFactory constructs a fresh extractor instance.
// Parallel workers call it once each so no instance is shared between them.
type ExtractorFactory func() (Extractor, error)

// ProgressFunc receives (processed, total) counts during aggregation.
type ProgressFunc func(processed, total int)
