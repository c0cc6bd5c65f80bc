// Package project orchestrates the initializer pipeline: validate the
// name, resolve local and remote conflicts, scaffold, set up the
// environment, commit, create the remote, push.
package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/hatchcli/hatch/audit"
	"github.com/hatchcli/hatch/config"
	"github.com/hatchcli/hatch/guide"
	"github.com/hatchcli/hatch/hosting"
	"github.com/hatchcli/hatch/lockfile"
	"github.com/hatchcli/hatch/pyenv"
	"github.com/hatchcli/hatch/resolve"
	"github.com/hatchcli/hatch/scaffold"
	"github.com/hatchcli/hatch/shellout"
	"github.com/hatchcli/hatch/vcs"
)

type (
	NewProjectCmd struct {
		cfg  *config.Config
		git  *vcs.Git
		host *hosting.GitHub
		venv *pyenv.Venv
		ui   resolve.Prompter
		rec  *audit.Recorder
		out  io.Writer

		Name           string `arg:"" name:"ProjectName" help:"Name of the project to create."`
		Template       string `name:"template" default:"python" enum:"python,go" help:"Project template."`
		ModulePath     string `name:"module-path" help:"Module path for the go template."`
		GoVersion      string `name:"go-version" default:"1.24.1" help:"Go version for the go template."`
		Description    string `name:"description" default:"PLACEHOLDER" help:"Short description of the project."`
		RequiresPython string `name:"requires-python" default:">=3.10" help:"Python version constraint for pyproject.toml."`
		OpenGuide      bool   `name:"open-guide" help:"Render the next-steps guidance in the default browser."`
		Debug          bool   `name:"debug" help:"Dump the resolved configuration to stderr."`
		TimeoutSeconds int    `name:"timeout-seconds" default:"1" help:"Timeout PyPI version lookups after this many seconds."`
	}

	// stdio joins stdin and stdout into the single terminal the
	// prompter reads and writes.
	stdio struct{}
)

var (
	ErrInvalidName = errors.New("invalid project name")

	nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

func (stdio) Read(p []byte) (n int, err error) {
	return os.Stdin.Read(p)
}

func (stdio) Write(p []byte) (n int, err error) {
	return os.Stdout.Write(p)
}

func (c *NewProjectCmd) AfterApply() (err error) {
	// Rejecting a bad name must come before the audit recorder creates
	// its state directory; nothing may touch the filesystem first.
	if err = validateName(c.Name); err != nil {
		return err
	}

	c.cfg, err = config.Load()
	if err != nil {
		return err
	}

	if c.Debug {
		spew.Fdump(os.Stderr, c.cfg)
	}

	runner := shellout.Exec{}

	c.git = vcs.New(runner)
	c.host = hosting.New(runner)
	c.venv = pyenv.New(runner, c.cfg.Python)
	c.ui = resolve.NewTerminal(stdio{})
	c.out = os.Stdout

	c.rec, err = audit.NewRecorder(audit.Options{
		Path:       c.cfg.Audit.Path,
		MaxSizeMB:  c.cfg.Audit.MaxSizeMB,
		MaxBackups: c.cfg.Audit.MaxBackups,
	})
	if err != nil {
		// The audit trail is advisory; losing it does not block the run.
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %s\n", err)

		c.rec = audit.NewNop()
	}

	return nil
}

// SetPrompter swaps the operator-facing prompter; the TUI entrypoint
// installs its bubbletea implementation here after parsing.
func (c *NewProjectCmd) SetPrompter(ui resolve.Prompter) {
	c.ui = ui
}

func validateName(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q may only contain letters, digits, hyphens and underscores", ErrInvalidName, name)
	}

	return nil
}

func (c *NewProjectCmd) Run() (err error) {
	if err = validateName(c.Name); err != nil {
		return err
	}

	if c.Template == "go" && c.ModulePath == "" {
		return fmt.Errorf("--module-path is required with the go template")
	}

	ctx := context.Background()

	if err = os.MkdirAll(c.cfg.ProjectsDir, 0750); err != nil {
		return fmt.Errorf("failed to create projects directory %q: %s", c.cfg.ProjectsDir, err.Error())
	}

	lock, err := lockfile.Acquire(c.cfg.ProjectsDir)
	if err != nil {
		return err
	}

	defer lockfile.Release(lock)
	defer func() { _ = c.rec.Close() }()

	sess := &resolve.Session{Name: c.Name, ProjectsDir: c.cfg.ProjectsDir}

	// Local check, then the authentication gate, then the remote check.
	// A rename at either menu carries through every later step.
	aborted, err := resolve.Run(ctx, sess, c.localCheck(), c.ui, c.rec)
	if err != nil {
		return err
	}

	if aborted {
		c.ui.Say("Cancelled.")

		return nil
	}

	if err = c.host.Authenticated(ctx); err != nil {
		return err
	}

	aborted, err = resolve.Run(ctx, sess, c.remoteCheck(), c.ui, c.rec)
	if err != nil {
		return err
	}

	if aborted {
		c.ui.Say("Cancelled.")

		return nil
	}

	return c.build(ctx, sess)
}

func (c *NewProjectCmd) localCheck() resolve.Check {
	return resolve.Check{
		Scope: resolve.ScopeLocal,
		Exists: func(_ context.Context, s *resolve.Session) (bool, error) {
			_, err := os.Stat(s.Path())
			if os.IsNotExist(err) {
				return false, nil
			} else if err != nil {
				return false, fmt.Errorf("failed to check %q: %s", s.Path(), err.Error())
			}

			return true, nil
		},
		Destroy: func(_ context.Context, s *resolve.Session) error {
			return os.RemoveAll(s.Path())
		},
		Confirm: true,
		AuditOp: audit.OpRemoveLocalDirectory,
		Target:  func(s *resolve.Session) string { return s.Path() },
	}
}

func (c *NewProjectCmd) remoteCheck() resolve.Check {
	return resolve.Check{
		Scope: resolve.ScopeRemote,
		Exists: func(ctx context.Context, s *resolve.Session) (bool, error) {
			return c.host.RepoExists(ctx, s.Name), nil
		},
		Destroy: func(ctx context.Context, s *resolve.Session) error {
			return c.host.Delete(ctx, s.Name)
		},
		AuditOp: audit.OpDeleteRemoteRepository,
		Target:  func(s *resolve.Session) string { return s.Name },
	}
}

// build runs the post-resolution pipeline. No branching remains beyond
// the template switch; every failure is fatal with no rollback.
func (c *NewProjectCmd) build(ctx context.Context, sess *resolve.Session) (err error) {
	path := sess.Path()

	if err = os.MkdirAll(path, 0750); err != nil {
		return fmt.Errorf("failed to create project directory %q: %s", path, err.Error())
	}

	if err = c.git.Init(ctx, path); err != nil {
		return err
	}

	if c.Template == "go" {
		err = scaffold.WriteGo(path, &scaffold.GoData{
			ProjectName: sess.Name,
			Description: c.Description,
			ModulePath:  c.ModulePath,
			GoVersion:   c.GoVersion,
		})
		if err != nil {
			return err
		}
	} else {
		if err = c.buildPython(ctx, sess, path); err != nil {
			return err
		}
	}

	if err = c.git.AddAll(ctx, path); err != nil {
		return err
	}

	if err = c.git.Commit(ctx, path, "Initial commit"); err != nil {
		return err
	}

	url, err := c.host.Create(ctx, path, sess.Name, c.cfg.Visibility)
	if err != nil {
		return err
	}

	branch, err := c.git.DefaultBranch(ctx, path)
	if err != nil {
		return err
	}

	if err = c.git.Push(ctx, path, "origin", branch); err != nil {
		return err
	}

	return c.finish(sess, path, url)
}

func (c *NewProjectCmd) buildPython(ctx context.Context, sess *resolve.Session, path string) (err error) {
	deps := make([]scaffold.Dependency, len(c.cfg.Dependencies))

	for i, name := range c.cfg.Dependencies {
		deps[i] = scaffold.Dependency{Name: name}
	}

	pinCtx, cancelFunc := context.WithTimeout(ctx, time.Duration(c.TimeoutSeconds)*time.Second)

	defer cancelFunc()

	if err = scaffold.PinVersions(pinCtx, deps); err != nil {
		fmt.Fprintf(os.Stderr, "warning: some dependency versions stay unpinned: %s\n", err)
	}

	err = scaffold.WritePython(path, &scaffold.PythonData{
		ProjectName:    sess.Name,
		Description:    c.Description,
		RequiresPython: c.RequiresPython,
		Deps:           deps,
	})
	if err != nil {
		return err
	}

	if err = c.venv.Create(ctx, path); err != nil {
		return err
	}

	if err = c.venv.Install(ctx, path, c.cfg.Dependencies); err != nil {
		return err
	}

	return c.venv.Snapshot(ctx, path)
}

func (c *NewProjectCmd) finish(sess *resolve.Session, path, url string) error {
	fmt.Fprintf(c.out, "Project %q created at %s.\n\n", sess.Name, path)

	md, err := guide.Markdown(guide.Data{
		ProjectName: sess.Name,
		ProjectPath: path,
		RepoURL:     url,
		Python:      c.Template != "go",
	})
	if err != nil {
		return err
	}

	if c.OpenGuide {
		if err = guide.Open(md); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s\n", err)
			guide.Print(c.out, md)
		}

		return nil
	}

	guide.Print(c.out, md)

	return nil
}
