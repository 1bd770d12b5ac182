// Package container provides porekit.Container implementations.
//
//   - H5Opener: reads fast5 files through the pure-Go HDF5 reader
//   - MemoryOpener: serves in-memory containers, for tests
package container
