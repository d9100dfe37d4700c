package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var confirmKeys = struct {
	Yes key.Binding
	No  key.Binding
}{
	Yes: key.NewBinding(key.WithKeys("y", "Y")),
	No:  key.NewBinding(key.WithKeys("n", "N", "enter", "esc", "q", "ctrl+c")),
}

// confirmModel is a y/N prompt that answers on the first key press
type confirmModel struct {
	prompt   string
	accepted bool
	done     bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, confirmKeys.Yes):
			m.accepted, m.done = true, true
			return m, tea.Quit
		case key.Matches(msg, confirmKeys.No):
			m.accepted, m.done = false, true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt))
	b.WriteString(" [y/N] ")
	if m.done {
		answer := "no"
		if m.accepted {
			answer = "yes"
		}
		b.WriteString(choiceStyle.Render(answer))
		b.WriteString("\n")
	}
	return b.String()
}

// Confirm asks prompt and reports whether the answer was yes. Anything
// other than y counts as no.
func Confirm(prompt string, opts ...tea.ProgramOption) (bool, error) {
	p := tea.NewProgram(confirmModel{prompt: prompt}, opts...)
	final, err := p.Run()
	if err != nil {
		slog.Error("confirm failed", "error", err)
		return false, fmt.Errorf("confirm: %w", err)
	}
	m, ok := final.(confirmModel)
	return ok && m.accepted, nil
}
