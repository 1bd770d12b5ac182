package extractor

import (
	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var channelFields = []field{
	// Stored as text by most writers; the record builder coerces it.
	{key: "number", attr: "channel_number", kind: kindString, required: true},
	{key: "range", attr: "range", kind: kindFloat},
	{key: "sampling_rate", attr: "sampling_rate", kind: kindFloat, required: true},
	{key: "digitisation", attr: "digitisation", kind: kindFloat},
	{key: "offset", attr: "offset", kind: kindFloat},
}

// Channel reads the pore channel parameters from UniqueGlobalKey/channel_id.
type Channel struct{}

// NewChannel is the Channel factory.
func NewChannel() (porekit.Extractor, error) {
	return Channel{}, nil
}

func (Channel) Descriptor() porekit.ExtractorDescriptor {
	return porekit.ExtractorDescriptor{BaseName: "channel", ExpectedKeys: keysOf(channelFields)}
}

func (Channel) Run(c porekit.Container) (porekit.PartialRecord, error) {
	return readFields(c, "channel", fast5.PathChannelID, channelFields)
}
