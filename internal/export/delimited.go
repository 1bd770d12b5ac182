package export

import (
	"context"
	"encoding/csv"

	"github.com/vvka-141/porekit/internal/aggregate"
)

// delimitedSink writes a header line and one line per row. A second Write
// appends rows only; its columns must match the first.
type delimitedSink struct {
	w       *csv.Writer
	close   func() error
	columns []string
}

func newDelimitedSink(dest string, comma rune, opts Options) (*delimitedSink, error) {
	out, closer, err := createOutput(dest, opts)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(out)
	w.Comma = comma
	return &delimitedSink{w: w, close: closer}, nil
}

func (s *delimitedSink) Write(ctx context.Context, result *aggregate.Result) error {
	columns := result.Table.Columns()
	if s.columns == nil {
		if err := s.w.Write(columns); err != nil {
			return exportError("failed to write header", err)
		}
		s.columns = columns
	} else if err := sameColumns(s.columns, columns); err != nil {
		return err
	}

	line := make([]string, len(columns))
	for _, row := range result.Table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, v := range row {
			line[i] = textValue(v)
		}
		if err := s.w.Write(line); err != nil {
			return exportError("failed to write row", err)
		}
	}

	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return exportError("failed to flush output", err)
	}
	return nil
}

func (s *delimitedSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.close()
		return exportError("failed to flush output", err)
	}
	if err := s.close(); err != nil {
		return exportError("failed to close output", err)
	}
	return nil
}
