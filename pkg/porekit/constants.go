package porekit

import "time"

// Exit codes for semantic error classification.
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error
//   - 3: Internal panic
//   - 10+: Application-specific errors
const (
	ExitSuccess          = 0  // Run completed
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid worker count, extractor set or config file
	ExitDiscoveryError   = 11 // Directory traversal failed
	ExitExtractionFailed = 12 // Extractor failed under strict mode
	ExitExportFailed     = 13 // Writing the output table failed
)

const (
	// FileExtension is the suffix of instrument data files picked up by discovery.
	FileExtension = ".fast5"

	// FieldFilename is the identity column holding the file's base name.
	FieldFilename = "filename"

	// FieldAbsoluteFilename is the identity column holding the file's absolute path.
	FieldAbsoluteFilename = "absolute_filename"

	// FieldChannelNumber is coerced to an integer by the record builder,
	// defaulting to 0 when the stored value cannot be parsed.
	FieldChannelNumber = "channel_number"

	// DefaultWorkers runs the aggregation sequentially.
	DefaultWorkers = 1

	// DefaultTable names the table written by database and file sinks.
	DefaultTable = "reads"

	// RunsTable records one row per aggregation run in database sinks.
	RunsTable = "porekit_runs"
)

// Retry policy for database sinks.
const (
	DefaultRetryInitialDelay = 100 * time.Millisecond
	DefaultRetryMaxDelay     = 10 * time.Second
	DefaultRetryMaxAttempts  = 3
)

// IdentityFields lists the columns every record carries regardless of the
// configured extractors, in schema order.
func IdentityFields() []string {
	return []string{FieldFilename, FieldAbsoluteFilename}
}
