package extractor

import (
	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/internal/fastq"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// Basecall summarizes basecalled strands stored in Basecall_2D_NNN and
// Basecall_1D_NNN analysis groups. Groups are applied 2D first, then 1D, each
// in numeric order; a later group overwrites an earlier one's strand fields.
type Basecall struct{}

// NewBasecall is the Basecall factory.
func NewBasecall() (porekit.Extractor, error) {
	return Basecall{}, nil
}

func (Basecall) Descriptor() porekit.ExtractorDescriptor {
	return porekit.ExtractorDescriptor{
		BaseName: "basecall",
		ExpectedKeys: []string{
			"has_basecall",
			"has_template", "has_complement", "has_2D",
			"template_length", "complement_length",
			"template_mean_qscore", "complement_mean_qscore",
			"2D_length", "2D_mean_qscore",
		},
	}
}

func (Basecall) Run(c porekit.Container) (porekit.PartialRecord, error) {
	groups, err := fast5.BasecallGroups(c)
	if err != nil {
		return nil, extractionError("basecall", fast5.PathAnalyses, err)
	}

	out := porekit.PartialRecord{"has_basecall": len(groups) > 0}
	for _, s := range fast5.Strands {
		out["has_"+string(s)] = false
	}

	for _, g := range groups {
		for _, s := range fast5.Strands {
			raw, ok, err := fast5.ReadFastq(c, g, s)
			if err != nil {
				return nil, extractionError("basecall", s.FastqPath(g), err)
			}
			if !ok {
				continue
			}

			summary, err := fastq.Decode(raw)
			if err != nil {
				return nil, extractionError("basecall", s.FastqPath(g), err)
			}
			out["has_"+string(s)] = true
			out[string(s)+"_length"] = int64(summary.Length)
			out[string(s)+"_mean_qscore"] = summary.MeanQuality
		}
	}
	return out, nil
}
