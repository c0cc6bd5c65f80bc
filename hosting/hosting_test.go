package hosting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatchcli/hatch/shellout"
)

func TestAuthenticatedWrapsFailure(t *testing.T) {
	stub := &shellout.Stubber{
		Errs: map[string]error{"gh auth status": assert.AnError},
	}

	err := New(stub).Authenticated(context.Background())

	require.ErrorIs(t, err, ErrAuthRequired)
}

func TestAuthenticatedPassesThrough(t *testing.T) {
	stub := &shellout.Stubber{}

	require.NoError(t, New(stub).Authenticated(context.Background()))
	assert.Equal(t, []string{"gh auth status"}, stub.CommandLines())
}

func TestRepoExists(t *testing.T) {
	stub := &shellout.Stubber{
		Errs: map[string]error{"gh repo view missing": assert.AnError},
	}

	h := New(stub)
	ctx := context.Background()

	assert.True(t, h.RepoExists(ctx, "present"))
	assert.False(t, h.RepoExists(ctx, "missing"))
}

func TestCreateReturnsURL(t *testing.T) {
	stub := &shellout.Stubber{
		Outputs: map[string]string{"gh repo create demo --public --source .": "https://github.com/someone/demo"},
	}

	url, err := New(stub).Create(context.Background(), "/tmp/demo", "demo", "public")

	require.NoError(t, err)
	assert.Equal(t, "https://github.com/someone/demo", url)
}

func TestCreateWrapsFailure(t *testing.T) {
	stub := &shellout.Stubber{
		Errs: map[string]error{"gh repo create demo --private --source .": assert.AnError},
	}

	_, err := New(stub).Create(context.Background(), "/tmp/demo", "demo", "private")

	require.ErrorIs(t, err, ErrRemoteCreateFailed)
}

func TestDelete(t *testing.T) {
	stub := &shellout.Stubber{}

	require.NoError(t, New(stub).Delete(context.Background(), "demo"))
	assert.Equal(t, []string{"gh repo delete demo --yes"}, stub.CommandLines())
}
