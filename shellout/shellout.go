// Package shellout invokes external CLIs (git, gh, python) as
// subprocesses. The real tools are called directly instead of linking
// protocol libraries so that user configuration (SSH keys, credential
// helpers, aliases) keeps working.
package shellout

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type (
	// Runner is the seam between pipeline steps and the external CLIs
	// they drive. Tests substitute a recording fake.
	Runner interface {
		Run(ctx context.Context, dir, name string, args ...string) error
		Output(ctx context.Context, dir, name string, args ...string) (string, error)
	}

	Exec struct{}
)

func (Exec) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

func (Exec) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
