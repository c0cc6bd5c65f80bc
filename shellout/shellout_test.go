package shellout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecOutputTrimsWhitespace(t *testing.T) {
	out, err := Exec{}.Output(context.Background(), t.TempDir(), "echo", "hello")

	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecReportsCommandLineOnFailure(t *testing.T) {
	err := Exec{}.Run(context.Background(), t.TempDir(), "false")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "false")
}

func TestStubberRecordsInOrder(t *testing.T) {
	stub := &Stubber{
		Outputs: map[string]string{"git status": "clean"},
		Errs:    map[string]error{"git push": assert.AnError},
	}

	ctx := context.Background()

	out, err := stub.Output(ctx, "/tmp", "git", "status")
	require.NoError(t, err)
	assert.Equal(t, "clean", out)

	err = stub.Run(ctx, "/tmp", "git", "push")
	require.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, []string{"git status", "git push"}, stub.CommandLines())
}
