package porekit

// Container is an open hierarchical data file.
// Paths are slash-delimited and relative to the file root; a leading slash is optional.
//
// A Container is owned by exactly one in-flight file operation and is closed
// when that operation ends. Implementations need not be safe for concurrent use.
type Container interface {
	// Exists reports whether a group or dataset exists at path.
	Exists(path string) (bool, error)

	// Attrs returns the attributes attached to the group or dataset at path.
	// Returns an error wrapping ErrPathNotFound if path does not exist.
	Attrs(path string) (map[string]any, error)

	// ReadBytes returns the raw contents of the dataset at path.
	ReadBytes(path string) ([]byte, error)

	// Children returns the member names of the group at path.
	Children(path string) ([]string, error)

	// Close releases the underlying file.
	Close() error
}

// ContainerOpener opens containers by filesystem path.
// Implementations must be safe for concurrent use.
type ContainerOpener interface {
	Open(path string) (Container, error)
}

// ContainerOpenerFunc adapts an ordinary function to ContainerOpener.
type ContainerOpenerFunc func(path string) (Container, error)

// Open calls f(path).
func (f ContainerOpenerFunc) Open(path string) (Container, error) {
	return f(path)
}
