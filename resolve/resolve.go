// Package resolve implements the interactive conflict-resolution
// workflow: a project name must be free both locally and remotely before
// scaffolding proceeds, and the operator decides what happens when it is
// not.
package resolve

import (
	"context"
	"path/filepath"

	"github.com/hatchcli/hatch/audit"
)

type (
	Scope string

	Choice int

	// Prompter is the operator-facing side of the workflow. The terminal
	// implementation lives in this package; a bubbletea one lives in tui.
	Prompter interface {
		Menu(scope Scope, name string) (Choice, error)
		ConfirmDestroy(target string) (bool, error)
		NewName(current string) (string, error)
		Say(format string, v ...any)
	}

	// Session carries the mutable project name. The derived path is
	// always recomputed from it, never stored.
	Session struct {
		Name        string
		ProjectsDir string
	}

	// Check describes one conflict domain (local directory or remote
	// repository). Exists and Destroy close over the collaborators so
	// the state machine stays free of filesystem and CLI concerns.
	Check struct {
		Scope   Scope
		Exists  func(ctx context.Context, s *Session) (bool, error)
		Destroy func(ctx context.Context, s *Session) error
		// Confirm requires an explicit y/Y before Destroy runs. The
		// local check sets it; the remote one does not, matching the
		// original tool's asymmetry.
		Confirm bool
		AuditOp string
		Target  func(s *Session) string
	}
)

const (
	ScopeLocal  Scope = "local"
	ScopeRemote Scope = "remote"
)

const (
	ChoiceDestroy Choice = iota + 1
	ChoiceRename
	ChoiceAbort
)

// Path derives the project directory from the current name.
func (s *Session) Path() string {
	return filepath.Join(s.ProjectsDir, s.Name)
}

// Run drives one conflict check to a terminal state. It returns
// aborted=true when the operator cancels the whole tool; any rename is
// left in the session for every subsequent step to see.
func Run(ctx context.Context, sess *Session, check Check, ui Prompter, rec *audit.Recorder) (aborted bool, err error) {
	for {
		exists, err := check.Exists(ctx, sess)
		if err != nil {
			return false, err
		}

		if !exists {
			return false, nil
		}

		choice, err := ui.Menu(check.Scope, sess.Name)
		if err != nil {
			return false, err
		}

		switch choice {
		case ChoiceDestroy:
			if check.Confirm {
				ok, err := ui.ConfirmDestroy(check.Target(sess))
				if err != nil {
					return false, err
				}

				if !ok {
					// Deletion cancelled; back to the menu.
					continue
				}
			}

			rec.Destroy(check.AuditOp, check.Target(sess))

			err = check.Destroy(ctx, sess)
			if err != nil {
				return false, err
			}

			return false, nil
		case ChoiceRename:
			aborted, err = rename(ctx, sess, check, ui)

			return aborted, err
		case ChoiceAbort:
			return true, nil
		}
	}
}

// rename keeps prompting for a replacement name until one is free. The
// replacement's character set is deliberately not re-validated.
func rename(ctx context.Context, sess *Session, check Check, ui Prompter) (aborted bool, err error) {
	for {
		name, err := ui.NewName(sess.Name)
		if err != nil {
			return false, err
		}

		sess.Name = name

		exists, err := check.Exists(ctx, sess)
		if err != nil {
			return false, err
		}

		if !exists {
			return false, nil
		}

		ui.Say("%q is also taken, pick another name", name)
	}
}
