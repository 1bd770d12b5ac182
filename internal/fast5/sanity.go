package fast5

import (
	"fmt"

	"github.com/vvka-141/porekit/pkg/porekit"
)

// RequiredPaths are the groups a container must expose to enter the pipeline.
var RequiredPaths = []string{PathAnalyses, PathGlobalKey, PathEventDetection}

// IsValid reports whether c carries every required group.
// It never panics and never returns an error: any failure means invalid.
func IsValid(c porekit.Container) bool {
	return Check(c) == nil
}

// Check is IsValid with a reason. The returned error wraps porekit.ErrSanityCheck.
func Check(c porekit.Container) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic while checking structure: %v", porekit.ErrSanityCheck, r)
		}
	}()

	if c == nil {
		return fmt.Errorf("%w: no container", porekit.ErrSanityCheck)
	}
	for _, p := range RequiredPaths {
		ok, existsErr := c.Exists(p)
		if existsErr != nil {
			return fmt.Errorf("%w: checking %s: %w", porekit.ErrSanityCheck, p, existsErr)
		}
		if !ok {
			return fmt.Errorf("%w: missing %s", porekit.ErrSanityCheck, p)
		}
	}
	return nil
}
