// Package extractor holds the catalog of metadata extractors.
//
// Each extractor reads one namespace of fields from a fast5 container:
//
//   - channel: sampling parameters of the pore channel
//   - tracking: run, flow cell and device identity
//   - basecall: presence, length and mean quality of basecalled strands
//   - read: timing and identity of the read
//
// New extractors are added by registering a factory with a Catalog. The
// catalog validates descriptors when they are registered, so a malformed
// extractor never reaches an aggregation run.
package extractor
