// Package filesystem provides the directory traversal abstraction used by
// discovery.
//
// Key interfaces:
//   - FileSystemProvider: opens directories and stats paths
//   - Directory: a tree that can be walked
//   - File: one entry produced by a walk
//
// Implementations:
//   - OSFileSystem: the host filesystem, walked in directory order
//   - MemoryFileSystem: an in-memory tree for tests, with injectable walk errors
package filesystem
