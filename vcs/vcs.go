// Package vcs wraps the git CLI for the handful of operations the
// initializer needs: init, stage, commit, push. Only the success or
// failure of each invocation is consumed.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hatchcli/hatch/shellout"
)

type (
	Git struct {
		runner shellout.Runner
	}
)

var (
	ErrInitFailed = errors.New("git init failed")
	ErrPushFailed = errors.New("git push failed")
)

func New(runner shellout.Runner) *Git {
	return &Git{runner: runner}
}

// Init runs "git init" in dir and verifies the metadata directory
// actually appeared. A zero exit status without a .git directory still
// counts as failure.
func (g *Git) Init(ctx context.Context, dir string) error {
	err := g.runner.Run(ctx, dir, "git", "init")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInitFailed, err.Error())
	}

	stat, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil || !stat.IsDir() {
		return fmt.Errorf("%w: no .git directory after init", ErrInitFailed)
	}

	return nil
}

func (g *Git) AddAll(ctx context.Context, dir string) error {
	err := g.runner.Run(ctx, dir, "git", "add", "-A")
	if err != nil {
		return fmt.Errorf("failed to stage files: %s", err.Error())
	}

	return nil
}

func (g *Git) Commit(ctx context.Context, dir, message string) error {
	err := g.runner.Run(ctx, dir, "git", "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to commit: %s", err.Error())
	}

	return nil
}

// DefaultBranch reports the branch HEAD points at, e.g. "main".
func (g *Git) DefaultBranch(ctx context.Context, dir string) (string, error) {
	branch, err := g.runner.Output(ctx, dir, "git", "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve default branch: %s", err.Error())
	}

	return branch, nil
}

func (g *Git) Push(ctx context.Context, dir, remote, branch string) error {
	err := g.runner.Run(ctx, dir, "git", "push", "-u", remote, branch)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPushFailed, err.Error())
	}

	return nil
}
