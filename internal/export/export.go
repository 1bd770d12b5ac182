package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vvka-141/porekit/internal/aggregate"
	"github.com/vvka-141/porekit/internal/logging"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// Format identifies a sink implementation.
type Format string

const (
	FormatAuto     Format = ""
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatJSONL    Format = "jsonl"
	FormatSQLite   Format = "sqlite"
	FormatPostgres Format = "postgres"
)

// Formats lists the accepted explicit formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatTSV, FormatJSONL, FormatSQLite, FormatPostgres}
}

// Stdout is the destination that writes delimited text to standard output.
const Stdout = "-"

// Sink receives one or more aggregation results.
type Sink interface {
	Write(ctx context.Context, result *aggregate.Result) error
	Close() error
}

// Options configures Open.
type Options struct {
	// Table names the destination table for database sinks. Defaults to
	// porekit.DefaultTable.
	Table string

	// Format overrides detection from the destination.
	Format Format

	Logger porekit.Logger

	// Stdout replaces os.Stdout for the "-" destination.
	Stdout io.Writer
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

func (o Options) withDefaults() (Options, error) {
	if o.Table == "" {
		o.Table = porekit.DefaultTable
	}
	if !tableName.MatchString(o.Table) {
		return o, fmt.Errorf("invalid table name %q: %w", o.Table, porekit.ErrInvalidConfig)
	}
	if o.Logger == nil {
		o.Logger = logging.NewNullLogger()
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	return o, nil
}

// Detect infers the sink format from a destination string.
func Detect(dest string) Format {
	lower := strings.ToLower(dest)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return FormatPostgres
	}
	switch filepath.Ext(lower) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".tsv":
		return FormatTSV
	default:
		return FormatCSV
	}
}

// ParseFormat validates an explicit format name. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == FormatAuto {
		return f, nil
	}
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return FormatAuto, fmt.Errorf("unknown output format %q: %w", s, porekit.ErrInvalidConfig)
}

// Open creates the sink for dest.
func Open(ctx context.Context, dest string, opts Options) (Sink, error) {
	if dest == "" {
		return nil, fmt.Errorf("output destination is required: %w", porekit.ErrInvalidConfig)
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == FormatAuto {
		format = Detect(dest)
	}
	opts.Logger.Verbose("Writing %s output to %s", format, Redact(dest))

	switch format {
	case FormatCSV:
		return newDelimitedSink(dest, ',', opts)
	case FormatTSV:
		return newDelimitedSink(dest, '\t', opts)
	case FormatJSONL:
		return newJSONLinesSink(dest, opts)
	case FormatSQLite:
		return newSQLiteSink(ctx, dest, opts)
	case FormatPostgres:
		return newPostgresSink(ctx, dest, opts)
	default:
		return nil, fmt.Errorf("unknown output format %q: %w", format, porekit.ErrInvalidConfig)
	}
}

// createOutput opens dest for writing, creating parent directories.
// The returned closer is a no-op for standard output.
func createOutput(dest string, opts Options) (io.Writer, func() error, error) {
	if dest == Stdout {
		return opts.Stdout, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create directory for %s: %w: %w", dest, err, porekit.ErrExport)
	}
	f, err := os.Create(dest)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w: %w", dest, err, porekit.ErrExport)
	}
	return f, f.Close, nil
}

func exportError(what string, err error) error {
	return fmt.Errorf("%s: %w: %w", what, err, porekit.ErrExport)
}

// Redact hides the password of a connection URL for logging.
func Redact(dest string) string {
	scheme, rest, ok := strings.Cut(dest, "://")
	if !ok {
		return dest
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dest
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return dest
	}
	return scheme + "://" + user + ":***@" + host
}
