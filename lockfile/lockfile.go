// Package lockfile enforces exclusive use of the projects directory.
// The initializer assumes a single interactive session; a second
// concurrent run fails fast instead of racing on conflict checks.
package lockfile

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".hatch.lock"

// Acquire takes the session lock under dir. The caller must Release it;
// the OS drops it anyway if the process dies mid-pipeline.
func Acquire(dir string) (*flock.Flock, error) {
	fl := flock.New(filepath.Join(dir, lockFileName))

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session lock: %s", err.Error())
	}

	if !locked {
		return nil, fmt.Errorf("another hatch session is already using %q", dir)
	}

	return fl, nil
}

func Release(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}
