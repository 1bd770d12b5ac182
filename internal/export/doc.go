// Package export writes an aggregated metadata table to its destination.
//
// The destination string selects the sink: a postgres:// URL writes to
// PostgreSQL, a .db/.sqlite path to SQLite, a .jsonl/.ndjson path to JSON
// lines, a .tsv path to tab-separated text, and anything else (including "-"
// for standard output) to CSV. Missing values become SQL NULL, JSON null,
// or "NA" in delimited text.
package export
