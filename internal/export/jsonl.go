package export

import (
	"bufio"
	"context"
	"encoding/json"
	"math"

	"github.com/vvka-141/porekit/internal/aggregate"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// jsonLinesSink writes one JSON object per row with keys in column order,
// plus a run_id key naming the aggregation run.
type jsonLinesSink struct {
	w     *bufio.Writer
	close func() error
}

// RunIDKey is added to every JSON lines object.
const RunIDKey = "run_id"

func newJSONLinesSink(dest string, opts Options) (*jsonLinesSink, error) {
	out, closer, err := createOutput(dest, opts)
	if err != nil {
		return nil, err
	}
	return &jsonLinesSink{w: bufio.NewWriter(out), close: closer}, nil
}

func (s *jsonLinesSink) Write(ctx context.Context, result *aggregate.Result) error {
	columns := result.Table.Columns()
	keys := make([][]byte, len(columns))
	for i, col := range columns {
		keys[i], _ = json.Marshal(col)
	}
	runID, _ := json.Marshal(result.RunID.String())

	for _, row := range result.Table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.w.WriteString(`{"` + RunIDKey + `":`)
		s.w.Write(runID)
		for i, v := range row {
			value, err := json.Marshal(jsonValue(v))
			if err != nil {
				return exportError("failed to encode "+columns[i], err)
			}
			s.w.WriteByte(',')
			s.w.Write(keys[i])
			s.w.WriteByte(':')
			s.w.Write(value)
		}
		if _, err := s.w.WriteString("}\n"); err != nil {
			return exportError("failed to write row", err)
		}
	}

	if err := s.w.Flush(); err != nil {
		return exportError("failed to flush output", err)
	}
	return nil
}

func jsonValue(v any) any {
	if porekit.IsMissing(v) {
		return nil
	}
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}

func (s *jsonLinesSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.close()
		return exportError("failed to flush output", err)
	}
	if err := s.close(); err != nil {
		return exportError("failed to close output", err)
	}
	return nil
}
