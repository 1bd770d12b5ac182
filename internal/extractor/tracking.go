package extractor

import (
	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/pkg/porekit"
)

var trackingFields = []field{
	{key: "run_id", attr: "run_id", kind: kindString, required: true},
	{key: "asic_id", attr: "asic_id", kind: kindString},
	{key: "version_name", attr: "version_name", kind: kindString},
	{key: "asic_temp", attr: "asic_temp", kind: kindFloat},
	{key: "heatsink_temp", attr: "heatsink_temp", kind: kindFloat},
	{key: "exp_script_purpose", attr: "exp_script_purpose", kind: kindString},
	{key: "flow_cell_id", attr: "flow_cell_id", kind: kindString},
	{key: "device_id", attr: "device_id", kind: kindString},
}

// Tracking reads run and hardware identity from UniqueGlobalKey/tracking_id.
type Tracking struct{}

// NewTracking is the Tracking factory.
func NewTracking() (porekit.Extractor, error) {
	return Tracking{}, nil
}

func (Tracking) Descriptor() porekit.ExtractorDescriptor {
	return porekit.ExtractorDescriptor{BaseName: "tracking", ExpectedKeys: keysOf(trackingFields)}
}

func (Tracking) Run(c porekit.Container) (porekit.PartialRecord, error) {
	return readFields(c, "tracking", fast5.PathTrackingID, trackingFields)
}
