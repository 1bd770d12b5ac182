package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vvka-141/porekit/internal/aggregate"
	"github.com/vvka-141/porekit/internal/db"
	"github.com/vvka-141/porekit/internal/retry"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var sqliteDialect = dialect{
	types: map[ColumnType]string{
		TypeText:    "TEXT",
		TypeInteger: "INTEGER",
		TypeReal:    "REAL",
		TypeBoolean: "BOOLEAN",
	},
	uuidType:    "TEXT",
	timeType:    "DATETIME",
	quote:       quoteDouble,
	placeholder: func(int) string { return "?" },
}

type sqliteSink struct {
	conn     *sql.DB
	table    string
	executor *retry.Executor
	logger   porekit.Logger
}

func newSQLiteSink(ctx context.Context, path string, opts Options) (*sqliteSink, error) {
	conn, err := db.OpenSQLite(ctx, path, db.WithLogger(opts.Logger))
	if err != nil {
		return nil, exportError("failed to open sqlite output", err)
	}
	executor := retry.NewExecutor(retry.NewSQLiteClassifier(),
		retry.NewExponentialBackoff(porekit.DefaultRetryMaxAttempts,
			retry.WithInitialDelay(porekit.DefaultRetryInitialDelay),
			retry.WithMaxDelay(porekit.DefaultRetryMaxDelay),
		))
	return &sqliteSink{conn: conn, table: opts.Table, executor: executor, logger: opts.Logger}, nil
}

func (s *sqliteSink) Write(ctx context.Context, result *aggregate.Result) error {
	err := s.executor.Execute(ctx, func(ctx context.Context) error {
		return s.write(ctx, result)
	})
	if err != nil {
		return exportError(fmt.Sprintf("failed to write table %s", s.table), err)
	}
	s.logger.Verbose("Wrote %d rows to sqlite table %s", result.Table.Len(), s.table)
	return nil
}

func (s *sqliteSink) write(ctx context.Context, result *aggregate.Result) error {
	columns := result.Table.Columns()
	types := InferTypes(result.Table)
	runID := result.RunID.String()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, sqliteDialect.createTable(s.table, columns, types)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqliteDialect.createRunsTable()); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	if err := s.checkColumns(ctx, tx, columns); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, s.insertRow(len(columns)))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range result.Table.Rows {
		if _, err := stmt.ExecContext(ctx, sqlRow(runID, row, types)...); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}

	args := runArgs(runID, s.table, Fingerprint(columns, types), result)
	if _, err := tx.ExecContext(ctx, sqliteDialect.insertRun(), args...); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return tx.Commit()
}

func (s *sqliteSink) checkColumns(ctx context.Context, tx *sql.Tx, columns []string) error {
	rows, err := tx.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", s.table)
	if err != nil {
		return fmt.Errorf("inspect table: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name != RunIDColumn {
			existing = append(existing, name)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return sameColumns(existing, columns)
}

func (s *sqliteSink) insertRow(n int) string {
	marks := "?"
	for range n {
		marks += ", ?"
	}
	return fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteDouble(s.table), marks)
}

func (s *sqliteSink) Close() error {
	if err := s.conn.Close(); err != nil {
		return exportError("failed to close sqlite output", err)
	}
	return nil
}
