package porekit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the pipeline's failure taxonomy.
// Callers distinguish them with errors.Is().
//
// Only ErrDiscovery and ErrInvalidConfig, plus ErrExtraction under strict
// mode, terminate an aggregation run. Everything else degrades to missing data.
var (
	// ErrInvalidConfig indicates a bad worker count or malformed extractor set.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDiscovery indicates the directory traversal failed.
	ErrDiscovery = errors.New("discovery failed")

	// ErrSanityCheck indicates a container lacks the required internal structure.
	// Files failing the check are skipped and never surface to the caller.
	ErrSanityCheck = errors.New("sanity check failed")

	// ErrUnopenableFile indicates a container could not be opened at all.
	ErrUnopenableFile = errors.New("unopenable file")

	// ErrExtraction indicates one extractor failed on one file.
	ErrExtraction = errors.New("extraction failed")

	// ErrExport indicates the output table could not be written.
	ErrExport = errors.New("export failed")

	// ErrPathNotFound is returned by containers for absent group or dataset paths.
	ErrPathNotFound = errors.New("path not found in container")

	// ErrConfigNotFound indicates no porekit.yaml exists at the requested location.
	ErrConfigNotFound = errors.New("porekit.yaml not found")
)

// ExtractionError describes a single extractor failing on a single file.
type ExtractionError struct {
	Extractor string // base_name of the failing extractor
	Path      string // container path of the file, filled in by the record builder
	Field     string // offending attribute or dataset, when known
	Err       error
}

func (e *ExtractionError) Error() string {
	var b strings.Builder
	b.WriteString("extractor ")
	b.WriteString(e.Extractor)
	if e.Path != "" {
		fmt.Fprintf(&b, " on %s", e.Path)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is reports ErrExtraction as a match so callers need not know the concrete type.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// UnopenableFileError is returned alongside a degenerate, identity-only record
// when a container cannot be opened.
type UnopenableFileError struct {
	Path string
	Err  error
}

func (e *UnopenableFileError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *UnopenableFileError) Unwrap() error { return e.Err }

func (e *UnopenableFileError) Is(target error) bool { return target == ErrUnopenableFile }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrConfigNotFound):
		return ExitConfigError
	case errors.Is(err, ErrDiscovery):
		return ExitDiscoveryError
	case errors.Is(err, ErrExtraction):
		return ExitExtractionFailed
	case errors.Is(err, ErrExport):
		return ExitExportFailed
	}

	if isUsageError(err) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError matches the messages cobra produces for flag and argument misuse.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
