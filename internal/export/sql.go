package export

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vvka-141/porekit/internal/aggregate"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// RunIDColumn is prepended to every database table so rows can be traced
// back to their porekit_runs entry.
const RunIDColumn = "run_id"

// dialect holds the DDL differences between the database sinks.
type dialect struct {
	types       map[ColumnType]string
	uuidType    string
	timeType    string
	quote       func(string) string
	placeholder func(n int) string
}

func (d dialect) createTable(table string, columns []string, types []ColumnType) string {
	defs := make([]string, 0, len(columns)+1)
	defs = append(defs, d.quote(RunIDColumn)+" "+d.uuidType+" NOT NULL")
	for i, col := range columns {
		defs = append(defs, d.quote(col)+" "+d.types[types[i]])
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", d.quote(table), strings.Join(defs, ",\n\t"))
}

func (d dialect) createRunsTable() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id %s PRIMARY KEY,
	root TEXT NOT NULL,
	table_name TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	discovered INTEGER NOT NULL,
	row_count INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	unopenable INTEGER NOT NULL,
	duration_ms BIGINT NOT NULL,
	created_at %s NOT NULL
)`, d.quote(porekit.RunsTable), d.uuidType, d.timeType)
}

func (d dialect) insertRun() string {
	placeholders := make([]string, 10)
	for i := range placeholders {
		placeholders[i] = d.placeholder(i + 1)
	}
	return fmt.Sprintf(`INSERT INTO %s
	(run_id, root, table_name, fingerprint, discovered, row_count, skipped, unopenable, duration_ms, created_at)
	VALUES (%s)`, d.quote(porekit.RunsTable), strings.Join(placeholders, ", "))
}

// runArgs matches the placeholders of insertRun.
func runArgs(runID any, table, fingerprint string, result *aggregate.Result) []any {
	s := result.Stats
	return []any{
		runID, result.Root, table, fingerprint,
		s.Discovered, result.Table.Len(), s.Skipped, s.Unopenable,
		s.Duration.Milliseconds(), time.Now().UTC(),
	}
}

// sqlRow converts a table row for insertion, Missing becoming NULL.
func sqlRow(runID any, row []any, types []ColumnType) []any {
	out := make([]any, 0, len(row)+1)
	out = append(out, runID)
	for i, v := range row {
		out = append(out, sqlValue(v, types[i]))
	}
	return out
}

// sameColumns rejects writing a table whose columns differ from an earlier
// run's in the same destination.
func sameColumns(existing, columns []string) error {
	if slices.Equal(existing, columns) {
		return nil
	}
	return fmt.Errorf("destination has columns %v, run produced %v: %w", existing, columns, porekit.ErrExport)
}

func quoteDouble(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
