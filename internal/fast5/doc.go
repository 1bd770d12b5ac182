// Package fast5 knows the internal layout of nanopore fast5 files: which
// groups a well-formed file carries, where the read node lives, how numbered
// analysis groups are named and where basecallers store FASTQ.
//
// Everything here works against porekit.Container, never a concrete reader.
package fast5
