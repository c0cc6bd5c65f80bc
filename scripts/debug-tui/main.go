// Debug harness for the conflict-menu model: wraps it and dumps every
// bubbletea message to messages.log for inspection.
package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/hatchcli/hatch/resolve"
	"github.com/hatchcli/hatch/tui"
)

type (
	model struct {
		inner tea.Model
		dump  io.Writer
	}
)

func initialModel() model {
	dump, err := os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatal("failed to open log file messages.log")
	}

	return model{
		inner: tui.InitialMenuModel(resolve.ScopeLocal, "debug-project"),
		dump:  dump,
	}
}

func (m model) Init() tea.Cmd {
	return m.inner.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	var cmd tea.Cmd

	m.inner, cmd = m.inner.Update(msg)

	return m, cmd
}

func (m model) View() string {
	return m.inner.View()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
