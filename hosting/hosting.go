// Package hosting wraps the GitHub CLI. The CLI owns authentication and
// transport; this package only issues fixed commands and interprets the
// exit status, plus stdout for the repository URL on create.
package hosting

import (
	"context"
	"errors"
	"fmt"

	"github.com/hatchcli/hatch/shellout"
)

type (
	GitHub struct {
		runner shellout.Runner
	}
)

var (
	ErrAuthRequired       = errors.New("not authenticated with the GitHub CLI")
	ErrRemoteCreateFailed = errors.New("failed to create remote repository")
)

func New(runner shellout.Runner) *GitHub {
	return &GitHub{runner: runner}
}

// Authenticated verifies the operator has an active gh session. There is
// no prompt and no retry; the operator authenticates out-of-band and
// re-runs.
func (h *GitHub) Authenticated(ctx context.Context) error {
	err := h.runner.Run(ctx, "", "gh", "auth", "status")
	if err != nil {
		return fmt.Errorf("%w: run 'gh auth login' first", ErrAuthRequired)
	}

	return nil
}

// RepoExists treats any non-zero exit of "gh repo view" as absence. The
// CLI is a black box here; its failure modes are not distinguished.
func (h *GitHub) RepoExists(ctx context.Context, name string) bool {
	err := h.runner.Run(ctx, "", "gh", "repo", "view", name)

	return err == nil
}

func (h *GitHub) Delete(ctx context.Context, name string) error {
	err := h.runner.Run(ctx, "", "gh", "repo", "delete", name, "--yes")
	if err != nil {
		return fmt.Errorf("failed to delete remote repository %q: %s", name, err.Error())
	}

	return nil
}

// Create makes the remote repository from the local source directory and
// returns its URL as printed by the CLI.
func (h *GitHub) Create(ctx context.Context, dir, name, visibility string) (url string, err error) {
	url, err = h.runner.Output(ctx, dir, "gh", "repo", "create", name, "--"+visibility, "--source", ".")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrRemoteCreateFailed, err.Error())
	}

	return url, nil
}
