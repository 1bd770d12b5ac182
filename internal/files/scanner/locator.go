package scanner

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/vvka-141/porekit/internal/files/filesystem"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// Discoverer yields candidate data file paths under a root.
type Discoverer interface {
	Discover(root string) iter.Seq2[string, error]
}

// Locator finds files by extension.
// Locator holds no state between calls and is safe for concurrent use
// as long as the provided fsProvider is.
type Locator struct {
	extension  string
	fsProvider filesystem.FileSystemProvider
}

var _ Discoverer = (*Locator)(nil)

// NewLocator creates a locator over the OS filesystem.
// An empty extension selects porekit.FileExtension.
func NewLocator(extension string) *Locator {
	return NewLocatorWithFS(extension, filesystem.NewOSFileSystem())
}

// NewLocatorWithFS creates a locator over a custom filesystem provider.
// Panics if fsProvider is nil.
func NewLocatorWithFS(extension string, fsProvider filesystem.FileSystemProvider) *Locator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if extension == "" {
		extension = porekit.FileExtension
	}
	return &Locator{extension: extension, fsProvider: fsProvider}
}

// Extension returns the file name suffix the locator matches.
func (l *Locator) Extension() string { return l.extension }

var errStopWalk = errors.New("stop walk")

// Discover walks root and yields the path of every regular file whose name
// ends with the locator's extension, in traversal order.
//
// A traversal failure is yielded once as an error wrapping porekit.ErrDiscovery,
// after which the sequence ends.
func (l *Locator) Discover(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		dir, err := l.fsProvider.Open(root)
		if err != nil {
			yield("", fmt.Errorf("%w: %w", porekit.ErrDiscovery, err))
			return
		}

		inBody := false
		err = dir.Walk(func(file filesystem.File, walkErr error) error {
			if walkErr != nil {
				return fmt.Errorf("%w: %w", porekit.ErrDiscovery, walkErr)
			}
			if file.IsDir() || !strings.HasSuffix(file.Name(), l.extension) {
				return nil
			}

			inBody = true
			more := yield(file.Path(), nil)
			inBody = false
			if !more {
				return errStopWalk
			}
			return nil
		})

		// The walk turns callback panics into errors; a panic raised by the
		// consumer's loop body must surface as a panic again.
		if inBody {
			panic(err)
		}
		if err != nil && !errors.Is(err, errStopWalk) {
			yield("", err)
		}
	}
}

// Collect materializes Discover into a slice.
func (l *Locator) Collect(root string) ([]string, error) {
	return Collect(l, root)
}

// Collect drains d.Discover(root), stopping at the first error.
func Collect(d Discoverer, root string) ([]string, error) {
	var paths []string
	for p, err := range d.Discover(root) {
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
