package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorColor = lipgloss.AdaptiveColor{Light: "#F793FF", Dark: "#AD58B4"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}

	exitStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Padding(0, 0, 0, 2)

	promptStyle = lipgloss.NewStyle().Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(cursorColor).
			Bold(true)
)

func newDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.NormalTitle = d.Styles.NormalTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(dimColor)

	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(cursorColor).
		Foreground(lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(cursorColor)

	d.ShortHelpFunc = listKeys.ShortHelp
	d.FullHelpFunc = listKeys.FullHelp
	return d
}
