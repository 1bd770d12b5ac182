package fast5

import (
	"fmt"
	"strings"

	"github.com/vvka-141/porekit/pkg/porekit"
)

// ReadFastq returns the FASTQ block stored for strand in an analysis group.
// The boolean is false when the strand's subgroup is absent. A subgroup
// without its Fastq dataset is an error wrapping porekit.ErrPathNotFound.
func ReadFastq(c porekit.Container, analysis string, strand Strand) ([]byte, bool, error) {
	ok, err := c.Exists(analysis + "/" + strand.Group())
	if err != nil || !ok {
		return nil, false, err
	}
	p := strand.FastqPath(analysis)
	ok, err = c.Exists(p)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, fmt.Errorf("%s: %w", p, porekit.ErrPathNotFound)
	}
	b, err := c.ReadBytes(p)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// FASTQ returns the stored FASTQ text for the requested strands, in the order
// given, each taken from the last basecall group that holds it. No strands
// means all of them. Strands absent from the file are left out.
func FASTQ(c porekit.Container, strands ...Strand) (string, error) {
	if len(strands) == 0 {
		strands = Strands
	}

	groups, err := BasecallGroups(c)
	if err != nil {
		return "", err
	}

	latest := make(map[Strand][]byte, len(strands))
	for _, g := range groups {
		for _, s := range strands {
			b, ok, err := ReadFastq(c, g, s)
			if err != nil {
				return "", err
			}
			if ok {
				latest[s] = b
			}
		}
	}

	var out strings.Builder
	for _, s := range strands {
		b, ok := latest[s]
		if !ok {
			continue
		}
		text := strings.TrimRight(string(b), "\x00")
		out.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}
