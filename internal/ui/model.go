package ui

import (
	"github.com/babarot/rsycle/internal/config"
	"github.com/babarot/rsycle/internal/engine"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
)

// model lets the operator pick one item out of the bin
type model struct {
	list     list.Model
	keys     keyMap
	exitMsg  string
	chosen   *engine.Item
	canceled bool
}

func newModel(items []engine.Item, cfg config.UI) model {
	listItems := make([]list.Item, 0, len(items))
	for _, it := range items {
		listItems = append(listItems, item{Item: it, dateFormat: cfg.DateFormat})
	}

	l := list.New(listItems, newDelegate(), defaultWidth, defaultHeight)
	l.Title = "Which to restore?"
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()

	return model{
		list:    l,
		keys:    listKeys,
		exitMsg: cfg.ExitMessage,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.canceled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Enter):
			if it, ok := m.list.SelectedItem().(item); ok {
				chosen := it.Item
				m.chosen = &chosen
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.canceled {
		if m.exitMsg == "" {
			return ""
		}
		return exitStyle.Render(m.exitMsg) + "\n"
	}
	if m.chosen != nil {
		return ""
	}
	return m.list.View()
}
