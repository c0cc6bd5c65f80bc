package resolve

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type (
	// Terminal prompts over a line-based terminal. Reads and writes go
	// through the same io.ReadWriter so tests can substitute buffers.
	Terminal struct {
		rw      io.ReadWriter
		scanner *bufio.Scanner
	}
)

func NewTerminal(rw io.ReadWriter) *Terminal {
	return &Terminal{rw: rw, scanner: bufio.NewScanner(rw)}
}

// Menu shows the three-option conflict menu and re-prompts without limit
// until it reads 1, 2 or 3.
func (t *Terminal) Menu(scope Scope, name string) (Choice, error) {
	if scope == ScopeLocal {
		fmt.Fprintf(t.rw, "Directory %q already exists.\n", name)
	} else {
		fmt.Fprintf(t.rw, "Repository %q already exists on the remote.\n", name)
	}

	for {
		fmt.Fprint(t.rw, "  1) Delete it and continue\n  2) Use a different project name\n  3) Cancel\nChoose an option [1-3]: ")

		line, err := t.readLine()
		if err != nil {
			return 0, err
		}

		switch line {
		case "1":
			return ChoiceDestroy, nil
		case "2":
			return ChoiceRename, nil
		case "3":
			return ChoiceAbort, nil
		default:
			fmt.Fprintln(t.rw, "Invalid option.")
		}
	}
}

// ConfirmDestroy requires an explicit y or Y; anything else cancels.
func (t *Terminal) ConfirmDestroy(target string) (bool, error) {
	fmt.Fprintf(t.rw, "Really delete %q? This cannot be undone. [y/N]: ", target)

	line, err := t.readLine()
	if err != nil {
		return false, err
	}

	return line == "y" || line == "Y", nil
}

func (t *Terminal) NewName(current string) (string, error) {
	for {
		fmt.Fprintf(t.rw, "New project name (was %q): ", current)

		line, err := t.readLine()
		if err != nil {
			return "", err
		}

		if line != "" {
			return line, nil
		}
	}
}

func (t *Terminal) Say(format string, v ...any) {
	fmt.Fprintf(t.rw, format+"\n", v...)
}

func (t *Terminal) readLine() (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read user input: %w", err)
		}

		return "", io.ErrUnexpectedEOF
	}

	return strings.TrimSpace(t.scanner.Text()), nil
}
