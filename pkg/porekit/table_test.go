package porekit_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/porekit/pkg/porekit"
)

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []porekit.ExtractorDescriptor
		want        []string
		wantErr     bool
	}{
		{
			name: "no extractors",
			want: []string{"filename", "absolute_filename"},
		},
		{
			name: "ordered by extractor then key",
			descriptors: []porekit.ExtractorDescriptor{
				{BaseName: "read", ExpectedKeys: []string{"id", "number"}},
				{BaseName: "channel", ExpectedKeys: []string{"number"}},
			},
			want: []string{"filename", "absolute_filename", "read_id", "read_number", "channel_number"},
		},
		{
			name:        "empty base name",
			descriptors: []porekit.ExtractorDescriptor{{ExpectedKeys: []string{"x"}}},
			wantErr:     true,
		},
		{
			name: "duplicate base name",
			descriptors: []porekit.ExtractorDescriptor{
				{BaseName: "channel", ExpectedKeys: []string{"number"}},
				{BaseName: "channel", ExpectedKeys: []string{"offset"}},
			},
			wantErr: true,
		},
		{
			name:        "duplicate key",
			descriptors: []porekit.ExtractorDescriptor{{BaseName: "read", ExpectedKeys: []string{"id", "id"}}},
			wantErr:     true,
		},
		{
			name: "colliding columns across namespaces",
			descriptors: []porekit.ExtractorDescriptor{
				{BaseName: "a_b", ExpectedKeys: []string{"c"}},
				{BaseName: "a", ExpectedKeys: []string{"b_c"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := porekit.NewSchema(tt.descriptors...)
			if tt.wantErr {
				require.ErrorIs(t, err, porekit.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Columns())
		})
	}
}

func TestTable_AppendConformsRecords(t *testing.T) {
	s, err := porekit.NewSchema(porekit.ExtractorDescriptor{BaseName: "read", ExpectedKeys: []string{"id", "duration"}})
	require.NoError(t, err)
	table := porekit.NewTable(s)

	rec := porekit.NewRecord("runs/a.fast5")
	rec["read_id"] = "abc"
	rec["read_duration"] = 0.0
	rec["stray_column"] = 1
	table.Append(rec)
	table.Append(porekit.NewRecord("runs/b.fast5"))

	require.Equal(t, 2, table.Len())
	for _, row := range table.Rows {
		assert.Len(t, row, s.Len())
	}

	v, ok := table.Value(0, "read_duration")
	assert.True(t, ok, "zero is a measured value")
	assert.Equal(t, 0.0, v)

	_, ok = table.Value(1, "read_id")
	assert.False(t, ok)
	assert.Equal(t, 1, table.Present("read_id"))

	col, err := table.Column("filename")
	require.NoError(t, err)
	assert.Equal(t, []any{"a.fast5", "b.fast5"}, col)

	_, err = table.Column("stray_column")
	assert.Error(t, err)
}

func TestNewRecord(t *testing.T) {
	rec := porekit.NewRecord(filepath.Join("dir", "read_1.fast5"))

	assert.Equal(t, "read_1.fast5", rec[porekit.FieldFilename])
	abs, _ := rec[porekit.FieldAbsoluteFilename].(string)
	assert.True(t, filepath.IsAbs(abs))
	assert.Len(t, rec, 2)
}

func TestMissing(t *testing.T) {
	assert.True(t, porekit.IsMissing(porekit.Missing))
	assert.False(t, porekit.IsMissing(nil))
	assert.False(t, porekit.IsMissing(""))
	assert.False(t, porekit.IsMissing(0))
}
