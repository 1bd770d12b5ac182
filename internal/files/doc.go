// Package files groups the file discovery sub-packages.
//
//   - filesystem: traversal abstraction over the OS or an in-memory tree
//   - scanner: locates instrument data files by extension
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/porekit/internal/files/filesystem"
//	    "github.com/vvka-141/porekit/internal/files/scanner"
//	)
//
//	locator := scanner.NewLocator(".fast5")
//	for path, err := range locator.Discover("./runs") {
//	    ...
//	}
package files
