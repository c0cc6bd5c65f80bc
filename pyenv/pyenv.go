// Package pyenv manages the per-project virtual environment. Commands
// run through the venv's own bin paths, so the parent process never
// activates or deactivates anything.
package pyenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hatchcli/hatch/shellout"
)

const venvDirName = ".venv"

type (
	Venv struct {
		runner shellout.Runner
		python string
	}
)

func New(runner shellout.Runner, python string) *Venv {
	return &Venv{runner: runner, python: python}
}

func (v *Venv) Create(ctx context.Context, dir string) error {
	err := v.runner.Run(ctx, dir, v.python, "-m", "venv", venvDirName)
	if err != nil {
		return fmt.Errorf("failed to create virtual environment: %s", err.Error())
	}

	return nil
}

func (v *Venv) Install(ctx context.Context, dir string, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	args := append([]string{"install"}, packages...)

	err := v.runner.Run(ctx, dir, v.binPath(dir, "pip"), args...)
	if err != nil {
		return fmt.Errorf("failed to install packages: %s", err.Error())
	}

	return nil
}

// Snapshot writes the installed package set to requirements.txt.
func (v *Venv) Snapshot(ctx context.Context, dir string) error {
	frozen, err := v.runner.Output(ctx, dir, v.binPath(dir, "pip"), "freeze")
	if err != nil {
		return fmt.Errorf("failed to freeze dependencies: %s", err.Error())
	}

	err = os.WriteFile(filepath.Clean(filepath.Join(dir, "requirements.txt")), []byte(frozen+"\n"), 0600)
	if err != nil {
		return fmt.Errorf("failed to write requirements.txt: %s", err.Error())
	}

	return nil
}

func (v *Venv) binPath(dir, tool string) string {
	sub := "bin"

	if runtime.GOOS == "windows" {
		sub = "Scripts"
	}

	return filepath.Join(dir, venvDirName, sub, tool)
}
