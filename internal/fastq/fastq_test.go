package fastq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantLen  int
		wantMean float64
	}{
		{
			name:     "single record",
			input:    "@read_1_template\nACGT\n+\n!+5?\n",
			wantID:   "read_1_template",
			wantLen:  4,
			wantMean: 15, // 0, 10, 20, 30
		},
		{
			name:     "description after id",
			input:    "@abc runid=xyz ch=7\nGGNN\n+\nIIII\n",
			wantID:   "abc",
			wantLen:  4,
			wantMean: 40,
		},
		{
			name:     "nul padded storage",
			input:    "@r\nAC\n+\n##\n\x00\x00\x00",
			wantID:   "r",
			wantLen:  2,
			wantMean: 2,
		},
		{
			name:     "only first record counts",
			input:    "@first\nA\n+\n5\n@second\nAAAA\n+\n!!!!\n",
			wantID:   "first",
			wantLen:  1,
			wantMean: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantLen, got.Length)
			assert.InDelta(t, tt.wantMean, got.MeanQuality, 1e-9)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("\x00\x00"))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("not a fastq block"))
	assert.Error(t, err)
}
