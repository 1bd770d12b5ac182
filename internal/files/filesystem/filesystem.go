package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File is one entry visited during a walk: a regular file or a directory.
type File interface {
	// Path returns the absolute path of the entry.
	Path() string

	// RelativePath returns the path relative to the walked root.
	RelativePath() string

	// Name returns the final path element.
	Name() string

	// IsDir reports whether the entry is a directory.
	IsDir() bool
}

// Directory is a tree that can be traversed.
type Directory interface {
	// Path returns the absolute path to the directory.
	Path() string

	// Walk visits every entry under the directory, the directory itself included.
	// Traversal errors are passed to fn with a nil File. If fn returns an error,
	// walking stops and Walk returns it; fs.SkipDir skips the current directory.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens directories for traversal.
type FileSystemProvider interface {
	// Open opens the directory at path.
	Open(path string) (Directory, error)

	// Stat returns file information for path.
	Stat(path string) (FileInfo, error)
}
