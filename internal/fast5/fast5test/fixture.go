// Package fast5test builds fast5-shaped in-memory containers for tests.
package fast5test

import (
	"fmt"

	"github.com/vvka-141/porekit/internal/container"
	"github.com/vvka-141/porekit/internal/fast5"
)

// FASTQ blocks stored by WithBasecall, keyed by strand.
// Qualities: template mean 15, complement mean 20, 2D mean 40.
var FastqBlocks = map[fast5.Strand]string{
	fast5.StrandTemplate:   "@read_template\nACGTAC\n+\n+5+5+5\n",
	fast5.StrandComplement: "@read_complement\nTTGA\n+\n5555\n",
	fast5.Strand2D:         "@read_2D\nACGTACGT\n+\nIIIIIIII\n",
}

// Option shapes a fixture.
type Option func(c *container.MemoryContainer)

// New returns a container passing the sanity check, shaped by opts.
func New(opts ...Option) *container.MemoryContainer {
	c := container.NewMemoryContainer().
		AddGroup(fast5.PathAnalyses, nil).
		AddGroup(fast5.PathGlobalKey, nil).
		AddGroup(fast5.PathEventDetection, nil)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalid returns a container lacking the event detection group.
func Invalid() *container.MemoryContainer {
	return container.NewMemoryContainer().
		AddGroup(fast5.PathAnalyses, nil).
		AddGroup(fast5.PathGlobalKey, nil)
}

// WithChannel adds channel_id attributes for the given channel number.
func WithChannel(number any) Option {
	return func(c *container.MemoryContainer) {
		c.AddGroup(fast5.PathChannelID, map[string]any{
			"channel_number": number,
			"range":          1402.882,
			"sampling_rate":  4000.0,
			"digitisation":   8192.0,
			"offset":         int64(4),
		})
	}
}

// WithTracking adds tracking_id attributes.
func WithTracking() Option {
	return func(c *container.MemoryContainer) {
		c.AddGroup(fast5.PathTrackingID, map[string]any{
			"run_id":             []byte("a1b2c3"),
			"asic_id":            "3574887596",
			"version_name":       "1.2.1",
			"asic_temp":          "31.6",
			"heatsink_temp":      37.0,
			"exp_script_purpose": "sequencing_run",
			"flow_cell_id":       "FAB42828",
			"device_id":          "MN16450",
		})
	}
}

// WithRead adds a read node with the given read number.
func WithRead(number int64) Option {
	return func(c *container.MemoryContainer) {
		c.AddGroup(fmt.Sprintf("%s/Read_%d", fast5.PathReads, number), map[string]any{
			"start_time":  int64(1000),
			"duration":    int64(250),
			"read_id":     "3f1c-read",
			"read_number": number,
		})
	}
}

// WithBasecall adds analysis group Analyses/<group> holding the strands given.
func WithBasecall(group string, strands ...fast5.Strand) Option {
	return func(c *container.MemoryContainer) {
		p := fast5.PathAnalyses + "/" + group
		c.AddGroup(p, nil)
		for _, s := range strands {
			c.AddDataset(s.FastqPath(p), []byte(FastqBlocks[s]), nil)
		}
	}
}

// WithFastq stores raw bytes as the FASTQ of one strand.
func WithFastq(group string, strand fast5.Strand, data string) Option {
	return func(c *container.MemoryContainer) {
		c.AddDataset(strand.FastqPath(fast5.PathAnalyses+"/"+group), []byte(data), nil)
	}
}

// WithStrandGroup adds a strand's BaseCalled subgroup without its Fastq dataset.
func WithStrandGroup(group string, strand fast5.Strand) Option {
	return func(c *container.MemoryContainer) {
		c.AddGroup(fast5.PathAnalyses+"/"+group+"/"+strand.Group(), nil)
	}
}
