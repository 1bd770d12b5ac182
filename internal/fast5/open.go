package fast5

import (
	"iter"

	"github.com/vvka-141/porekit/pkg/porekit"
)

// OpenFile is a container that passed the sanity check, with its path.
// The consumer owns Container and must close it.
type OpenFile struct {
	Path      string
	Container porekit.Container
}

// OpenValid opens each discovered path and yields the ones that pass the
// sanity check. Files that cannot be opened or fail the check are closed and
// skipped silently. Discovery errors are passed through.
func OpenValid(paths iter.Seq2[string, error], opener porekit.ContainerOpener) iter.Seq2[OpenFile, error] {
	return func(yield func(OpenFile, error) bool) {
		for p, err := range paths {
			if err != nil {
				if !yield(OpenFile{}, err) {
					return
				}
				continue
			}

			c, err := opener.Open(p)
			if err != nil {
				continue
			}
			if !IsValid(c) {
				c.Close()
				continue
			}
			if !yield(OpenFile{Path: p, Container: c}, nil) {
				return
			}
		}
	}
}
