package export

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/porekit/internal/aggregate"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// sampleResult has three rows: a complete one, one missing the read
// fields, and a degenerate row holding only the identity fields.
func sampleResult(t *testing.T) *aggregate.Result {
	t.Helper()

	schema, err := porekit.NewSchema(
		porekit.ExtractorDescriptor{BaseName: "channel", ExpectedKeys: []string{"number", "sampling_rate"}},
		porekit.ExtractorDescriptor{BaseName: "read", ExpectedKeys: []string{"id", "duration"}},
		porekit.ExtractorDescriptor{BaseName: "basecall", ExpectedKeys: []string{"has_2d"}},
	)
	require.NoError(t, err)

	table := porekit.NewTable(schema)
	table.Append(porekit.Record{
		"filename": "a.fast5", "absolute_filename": "/data/a.fast5",
		"channel_number": int64(12), "channel_sampling_rate": 4000.0,
		"read_id": "r-1", "read_duration": int64(3400), "basecall_has_2d": true,
	})
	table.Append(porekit.Record{
		"filename": "b.fast5", "absolute_filename": "/data/b.fast5",
		"channel_number": int64(7), "channel_sampling_rate": 4000.5,
		"basecall_has_2d": false,
	})
	table.Append(porekit.NewRecord("/data/c.fast5"))

	return &aggregate.Result{
		RunID: uuid.MustParse("6f1c2c1e-0a4b-4f7e-9b1a-2f0e5d7c8a90"),
		Root:  "/data",
		Table: table,
		Stats: aggregate.Stats{Discovered: 4, Rows: 3, Skipped: 1, Unopenable: 1, Duration: 1500 * time.Millisecond},
	}
}
