package export

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/porekit/internal/aggregate"
	"github.com/vvka-141/porekit/internal/db"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var postgresDialect = dialect{
	types: map[ColumnType]string{
		TypeText:    "TEXT",
		TypeInteger: "BIGINT",
		TypeReal:    "DOUBLE PRECISION",
		TypeBoolean: "BOOLEAN",
	},
	uuidType:    "UUID",
	timeType:    "TIMESTAMPTZ",
	quote:       func(ident string) string { return pgx.Identifier{ident}.Sanitize() },
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
}

// postgresSink loads rows with COPY inside one transaction per result.
type postgresSink struct {
	pool   *pgxpool.Pool
	table  string
	logger porekit.Logger
}

func newPostgresSink(ctx context.Context, connString string, opts Options) (*postgresSink, error) {
	pool, err := db.ConnectPostgres(ctx, connString, db.WithLogger(opts.Logger))
	if err != nil {
		return nil, exportError("failed to connect to postgres output", err)
	}
	return &postgresSink{pool: pool, table: opts.Table, logger: opts.Logger}, nil
}

func (s *postgresSink) Write(ctx context.Context, result *aggregate.Result) error {
	if err := s.write(ctx, result); err != nil {
		return exportError(fmt.Sprintf("failed to write table %s", s.table), err)
	}
	s.logger.Verbose("Copied %d rows to postgres table %s", result.Table.Len(), s.table)
	return nil
}

func (s *postgresSink) write(ctx context.Context, result *aggregate.Result) error {
	columns := result.Table.Columns()
	types := InferTypes(result.Table)
	runID := [16]byte(result.RunID)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, postgresDialect.createTable(s.table, columns, types)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if _, err := tx.Exec(ctx, postgresDialect.createRunsTable()); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	if err := s.checkColumns(ctx, tx, columns); err != nil {
		return err
	}

	rows := make([][]any, len(result.Table.Rows))
	for i, row := range result.Table.Rows {
		rows[i] = sqlRow(runID, row, types)
	}
	copyColumns := append([]string{RunIDColumn}, columns...)
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{s.table}, copyColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy rows: %w", err)
	}

	args := runArgs(runID, s.table, Fingerprint(columns, types), result)
	if _, err := tx.Exec(ctx, postgresDialect.insertRun(), args...); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *postgresSink) checkColumns(ctx context.Context, tx pgx.Tx, columns []string) error {
	rows, err := tx.Query(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`, s.table)
	if err != nil {
		return fmt.Errorf("inspect table: %w", err)
	}
	existing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("inspect table: %w", err)
	}

	filtered := existing[:0]
	for _, name := range existing {
		if name != RunIDColumn {
			filtered = append(filtered, name)
		}
	}
	return sameColumns(filtered, columns)
}

func (s *postgresSink) Close() error {
	s.pool.Close()
	return nil
}
