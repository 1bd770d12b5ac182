// Package scanner locates instrument data files in a directory tree.
//
// Discovery is lazy: Locator.Discover returns an iterator that walks the tree
// as it is consumed, and every call walks afresh. Files are matched on their
// name suffix only; nothing is opened.
//
// The locator is filesystem-agnostic through filesystem.FileSystemProvider,
// so tests drive it with an in-memory tree.
package scanner
