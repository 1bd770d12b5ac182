package extractor

import (
	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var readNodeFields = []field{
	{key: "start_time", attr: "start_time", kind: kindInt, required: true},
	{key: "duration", attr: "duration", kind: kindFloat, required: true},
	{key: "id", attr: "read_id", kind: kindString, required: true},
	{key: "number", attr: "read_number", kind: kindInt, required: true},
}

// Read reads timing and identity from the first read node under
// Analyses/EventDetection_000/Reads. Times are raw sample counts.
type Read struct{}

// NewRead is the Read factory.
func NewRead() (porekit.Extractor, error) {
	return Read{}, nil
}

func (Read) Descriptor() porekit.ExtractorDescriptor {
	return porekit.ExtractorDescriptor{
		BaseName:     "read",
		ExpectedKeys: []string{"start_time", "duration", "end_time", "id", "number"},
	}
}

func (Read) Run(c porekit.Container) (porekit.PartialRecord, error) {
	node, err := fast5.ReadNode(c)
	if err != nil {
		return nil, extractionError("read", fast5.PathReads, err)
	}

	out, err := readFields(c, "read", node, readNodeFields)
	if err != nil {
		return nil, err
	}
	out["end_time"] = float64(out["start_time"].(int64)) + out["duration"].(float64)
	return out, nil
}
