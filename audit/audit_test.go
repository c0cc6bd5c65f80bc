package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderWritesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "audit.log")

	rec, err := NewRecorder(Options{Path: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	rec.Destroy(OpRemoveLocalDirectory, "/projects/demo")

	require.NoError(t, rec.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry struct {
		ID     string `json:"id"`
		Op     string `json:"op"`
		Target string `json:"target"`
		TS     string `json:"ts"`
	}

	require.NoError(t, json.Unmarshal(contents, &entry))
	assert.Equal(t, OpRemoveLocalDirectory, entry.Op)
	assert.Equal(t, "/projects/demo", entry.Target)
	assert.Len(t, entry.ID, 26, "entry ids are ULIDs")
	assert.NotEmpty(t, entry.TS)
}

func TestNewRecorderRequiresPath(t *testing.T) {
	_, err := NewRecorder(Options{})

	require.Error(t, err)
}

func TestNopRecorderDiscards(t *testing.T) {
	rec := NewNop()

	rec.Destroy(OpDeleteRemoteRepository, "demo")

	require.NoError(t, rec.Close())
}
