// Package fastq decodes the FASTQ blocks basecallers embed in fast5 files.
package fastq

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
)

// ErrEmpty is returned for input holding no record or a zero-length sequence.
var ErrEmpty = errors.New("empty fastq record")

// Summary is the part of a FASTQ record the metadata table keeps.
type Summary struct {
	ID          string
	Length      int
	MeanQuality float64
}

// Decode parses the first record of a Sanger-encoded FASTQ block.
// Trailing NUL padding from fixed-length string storage is ignored.
func Decode(b []byte) (Summary, error) {
	b = bytes.TrimRight(b, "\x00")
	if len(bytes.TrimSpace(b)) == 0 {
		return Summary{}, ErrEmpty
	}

	r := fastq.NewReader(bytes.NewReader(b), linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger))
	s, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Summary{}, ErrEmpty
		}
		return Summary{}, fmt.Errorf("decode fastq: %w", err)
	}

	qs, ok := s.(*linear.QSeq)
	if !ok {
		return Summary{}, fmt.Errorf("decode fastq: unexpected sequence type %T", s)
	}
	if len(qs.Seq) == 0 {
		return Summary{}, ErrEmpty
	}

	var total float64
	for _, ql := range qs.Seq {
		total += float64(ql.Q)
	}

	return Summary{
		ID:          qs.Name(),
		Length:      len(qs.Seq),
		MeanQuality: total / float64(len(qs.Seq)),
	}, nil
}
