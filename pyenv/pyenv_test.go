package pyenv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatchcli/hatch/shellout"
)

func TestCreateUsesConfiguredInterpreter(t *testing.T) {
	stub := &shellout.Stubber{}

	err := New(stub, "python3.12").Create(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, []string{"python3.12 -m venv .venv"}, stub.CommandLines())
}

func TestInstallSkipsEmptySet(t *testing.T) {
	stub := &shellout.Stubber{}

	err := New(stub, "python3").Install(context.Background(), t.TempDir(), nil)

	require.NoError(t, err)
	assert.Empty(t, stub.Calls)
}

func TestInstallRunsVenvPip(t *testing.T) {
	stub := &shellout.Stubber{}
	dir := t.TempDir()

	err := New(stub, "python3").Install(context.Background(), dir, []string{"pytest", "ruff"})

	require.NoError(t, err)
	require.Len(t, stub.Calls, 1)
	assert.Equal(t, filepath.Join(dir, ".venv", "bin", "pip"), stub.Calls[0].Name)
	assert.Equal(t, []string{"install", "pytest", "ruff"}, stub.Calls[0].Args)
}

func TestSnapshotWritesManifest(t *testing.T) {
	dir := t.TempDir()

	pip := filepath.Join(dir, ".venv", "bin", "pip")

	stub := &shellout.Stubber{
		Outputs: map[string]string{shellout.CommandLine(pip, "freeze"): "pytest==8.0.0\nruff==0.4.0"},
	}

	err := New(stub, "python3").Snapshot(context.Background(), dir)

	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "requirements.txt"))
	require.NoError(t, err)

	assert.Equal(t, "pytest==8.0.0\nruff==0.4.0\n", string(contents))
}
