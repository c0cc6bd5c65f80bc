// Package tui is the bubbletea front end for the conflict-resolution
// prompts. It implements the same prompting interface as the line-based
// terminal, so the state machine cannot tell the two apart.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hatchcli/hatch/resolve"
)

type (
	Prompter struct {
		out io.Writer
	}

	menuModel struct {
		help   help.Model
		title  string
		labels []string
		index  int
		choice resolve.Choice
		done   bool
	}

	confirmModel struct {
		ti     textinput.Model
		target string
		yes    bool
		done   bool
	}

	renameModel struct {
		ti      textinput.Model
		current string
		name    string
		done    bool
	}

	menuKeyMap struct{}

	inputKeyMap struct{}
)

var (
	keys = struct {
		up     key.Binding
		down   key.Binding
		choose key.Binding
		cancel key.Binding
		finish key.Binding
	}{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "choose"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		finish: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "finish input"),
		),
	}

	palette = struct {
		magenta lipgloss.Color
	}{
		magenta: lipgloss.Color("212"),
	}

	highlightedStyle = lipgloss.NewStyle().Foreground(palette.magenta)
)

func (menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.choose, keys.cancel}
}

func (menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down},
		{keys.choose, keys.cancel},
	}
}

func (inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.finish, keys.cancel}
}

func (inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.finish, keys.cancel},
	}
}

func NewPrompter() *Prompter {
	return &Prompter{out: os.Stdout}
}

// InitialMenuModel exposes the conflict menu for the debug harness under
// scripts/.
func InitialMenuModel(scope resolve.Scope, name string) tea.Model {
	return newMenuModel(scope, name)
}

func (p *Prompter) Menu(scope resolve.Scope, name string) (resolve.Choice, error) {
	final, err := tea.NewProgram(newMenuModel(scope, name)).Run()
	if err != nil {
		return 0, fmt.Errorf("conflict menu failed: %w", err)
	}

	m, ok := final.(menuModel)
	if !ok || !m.done {
		return resolve.ChoiceAbort, nil
	}

	return m.choice, nil
}

func (p *Prompter) ConfirmDestroy(target string) (bool, error) {
	final, err := tea.NewProgram(newConfirmModel(target)).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	m, ok := final.(confirmModel)

	return ok && m.done && m.yes, nil
}

func (p *Prompter) NewName(current string) (string, error) {
	for {
		final, err := tea.NewProgram(newRenameModel(current)).Run()
		if err != nil {
			return "", fmt.Errorf("rename prompt failed: %w", err)
		}

		m, ok := final.(renameModel)
		if ok && m.done && m.name != "" {
			return m.name, nil
		}
	}
}

func (p *Prompter) Say(format string, v ...any) {
	fmt.Fprintf(p.out, format+"\n", v...)
}

func newMenuModel(scope resolve.Scope, name string) menuModel {
	title := fmt.Sprintf("Directory %q already exists.", name)

	if scope == resolve.ScopeRemote {
		title = fmt.Sprintf("Repository %q already exists on the remote.", name)
	}

	return menuModel{
		help:  help.New(),
		title: title,
		labels: []string{
			"Delete it and continue",
			"Use a different project name",
			"Cancel",
		},
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.index > 0 {
			m.index -= 1
		}
	case key.Matches(keyMsg, keys.down):
		if m.index < len(m.labels)-1 {
			m.index += 1
		}
	case key.Matches(keyMsg, keys.choose):
		m.choice = resolve.Choice(m.index + 1)
		m.done = true

		return m, tea.Quit
	case key.Matches(keyMsg, keys.cancel):
		m.choice = resolve.ChoiceAbort
		m.done = true

		return m, tea.Quit
	}

	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder

	b.WriteString(m.title)
	b.WriteString("\n\n")

	for i, label := range m.labels {
		if i == m.index {
			b.WriteString(highlightedStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}

		b.WriteRune('\n')
	}

	b.WriteRune('\n')
	b.WriteString(m.help.View(menuKeyMap{}))
	b.WriteRune('\n')

	return b.String()
}

func newConfirmModel(target string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = "N"
	ti.CharLimit = 1
	ti.Width = 4
	ti.Prompt = " "

	_ = ti.Focus()

	return confirmModel{ti: ti, target: target}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.finish):
			v := m.ti.Value()
			m.yes = v == "y" || v == "Y"
			m.done = true

			return m, tea.Quit
		case key.Matches(keyMsg, keys.cancel):
			m.done = true

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.ti, cmd = m.ti.Update(msg)

	return m, cmd
}

func (m confirmModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Really delete %q? This cannot be undone. [y/N]:", m.target)
	b.WriteString(m.ti.View())
	b.WriteString("\n\n")
	b.WriteString(help.New().View(inputKeyMap{}))
	b.WriteRune('\n')

	return b.String()
}

func newRenameModel(current string) renameModel {
	ti := textinput.New()
	ti.Placeholder = current
	ti.CharLimit = 128
	ti.Width = 40
	ti.Prompt = " "

	_ = ti.Focus()

	return renameModel{ti: ti, current: current}
}

func (m renameModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m renameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.finish) {
			m.name = strings.TrimSpace(m.ti.Value())
			m.done = true

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.ti, cmd = m.ti.Update(msg)

	return m, cmd
}

func (m renameModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "New project name (was %q):", m.current)
	b.WriteString(m.ti.View())
	b.WriteString("\n\n")
	b.WriteString(help.New().View(inputKeyMap{}))
	b.WriteRune('\n')

	return b.String()
}
