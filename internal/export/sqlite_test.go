package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/porekit/pkg/porekit"
)

func TestSQLiteSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.db")
	result := sampleResult(t)

	sink, err := Open(context.Background(), path, Options{Table: "nanopore"})
	require.NoError(t, err)
	require.NoError(t, sink.Write(context.Background(), result))
	require.NoError(t, sink.Close())

	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer conn.Close()

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM nanopore`).Scan(&count))
	assert.Equal(t, 3, count)

	var (
		channel  int64
		rate     float64
		readID   sql.NullString
		has2D    sql.NullBool
		runID    string
		filename string
	)
	require.NoError(t, conn.QueryRow(
		`SELECT run_id, filename, channel_number, channel_sampling_rate, read_id, basecall_has_2d
		 FROM nanopore WHERE filename = 'b.fast5'`,
	).Scan(&runID, &filename, &channel, &rate, &readID, &has2D))

	assert.Equal(t, result.RunID.String(), runID)
	assert.Equal(t, int64(7), channel)
	assert.Equal(t, 4000.5, rate)
	assert.False(t, readID.Valid, "missing values are stored as NULL")
	assert.True(t, has2D.Valid)
	assert.False(t, has2D.Bool)

	var (
		rows, skipped int
		fingerprint   string
	)
	require.NoError(t, conn.QueryRow(
		`SELECT row_count, skipped, fingerprint FROM porekit_runs WHERE run_id = ?`, runID,
	).Scan(&rows, &skipped, &fingerprint))
	assert.Equal(t, 3, rows)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, Fingerprint(result.Table.Columns(), InferTypes(result.Table)), fingerprint)
}

func TestSQLiteSink_AppendsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.sqlite")

	for range 2 {
		result := sampleResult(t)
		result.RunID = uuid.New()

		sink, err := Open(context.Background(), path, Options{})
		require.NoError(t, err)
		require.NoError(t, sink.Write(context.Background(), result))
		require.NoError(t, sink.Close())
	}

	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer conn.Close()

	var rows, runs int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM reads`).Scan(&rows))
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM porekit_runs`).Scan(&runs))
	assert.Equal(t, 6, rows)
	assert.Equal(t, 2, runs)
}

func TestSQLiteSink_ColumnMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.db")

	sink, err := Open(context.Background(), path, Options{})
	require.NoError(t, err)
	defer sink.Close()
	require.NoError(t, sink.Write(context.Background(), sampleResult(t)))

	schema, err := porekit.NewSchema(porekit.ExtractorDescriptor{BaseName: "tracking", ExpectedKeys: []string{"run_id"}})
	require.NoError(t, err)
	other := sampleResult(t)
	other.RunID = uuid.New()
	other.Table = porekit.NewTable(schema)
	other.Table.Append(porekit.NewRecord("/data/d.fast5"))

	err = sink.Write(context.Background(), other)
	assert.ErrorIs(t, err, porekit.ErrExport)
}
