package lockfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	fl, err := Acquire(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, lockFileName))

	Release(fl)

	// Re-acquirable after release.
	fl, err = Acquire(dir)
	require.NoError(t, err)

	Release(fl)
}

func TestAcquireFailsWhileHeld(t *testing.T) {
	dir := t.TempDir()

	fl, err := Acquire(dir)
	require.NoError(t, err)

	defer Release(fl)

	_, err = Acquire(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "another hatch session")
}

func TestReleaseNilIsSafe(t *testing.T) {
	Release(nil)
}
