// Package checksum computes SHA-256 digests used to identify table layouts
// across runs, so sinks can tell whether rows written by different runs
// share a schema.
package checksum
