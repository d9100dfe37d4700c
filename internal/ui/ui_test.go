package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/babarot/rsycle/internal/bin"
	"github.com/babarot/rsycle/internal/config"
	"github.com/babarot/rsycle/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

func testItems() []engine.Item {
	return []engine.Item{
		{
			Entry:    bin.Entry{Name: "a.txt.100", Path: "/bin/a.txt.100", Base: "a.txt", Timestamp: 100, Managed: true},
			Original: "/home/u/a.txt",
		},
		{
			Entry:    bin.Entry{Name: "src.200", Path: "/bin/src.200", Base: "src", Timestamp: 200, Managed: true, IsDir: true},
			Original: "/home/u/project/src",
		},
	}
}

func press(m tea.Model, k tea.KeyMsg) tea.Model {
	next, _ := m.Update(k)
	return next
}

func TestModelEnterChoosesCursorItem(t *testing.T) {
	var m tea.Model = newModel(testItems(), config.UI{DateFormat: "relative"})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	got := m.(model)
	if got.chosen == nil {
		t.Fatal("nothing chosen")
	}
	if got.chosen.Path != "/bin/src.200" {
		t.Errorf("chosen = %q, want %q", got.chosen.Path, "/bin/src.200")
	}
	if got.View() != "" {
		t.Errorf("View() after choice = %q, want empty", got.View())
	}
}

func TestModelQuitCancels(t *testing.T) {
	var m tea.Model = newModel(testItems(), config.UI{ExitMessage: "bye!"})
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	got := m.(model)
	if !got.canceled || got.chosen != nil {
		t.Fatalf("canceled = %v, chosen = %v", got.canceled, got.chosen)
	}
	if !strings.Contains(got.View(), "bye!") {
		t.Errorf("View() = %q, want exit message", got.View())
	}
}

func TestItemRendering(t *testing.T) {
	items := testItems()
	dir := item{Item: items[1], dateFormat: "absolute"}
	if got := dir.Title(); got != "src/" {
		t.Errorf("Title() = %q, want %q", got, "src/")
	}
	want := time.Unix(200, 0).Format(absoluteTimeFormat)
	if got := dir.Description(); !strings.Contains(got, want) || !strings.Contains(got, "/home/u/project") {
		t.Errorf("Description() = %q", got)
	}
	if got := dir.FilterValue(); got != "src" {
		t.Errorf("FilterValue() = %q", got)
	}
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want bool
	}{
		{name: "yes", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, want: true},
		{name: "no", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, want: false},
		{name: "enter defaults to no", key: tea.KeyMsg{Type: tea.KeyEnter}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(confirmModel{prompt: "Empty the bin?"}, tt.key).(confirmModel)
			if !m.done {
				t.Fatal("prompt not answered")
			}
			if m.accepted != tt.want {
				t.Errorf("accepted = %v, want %v", m.accepted, tt.want)
			}
		})
	}
}

func TestItemDescriptionTruncated(t *testing.T) {
	it := item{Item: testItems()[0], dateFormat: "absolute"}
	it.Original = "/" + strings.Repeat("deep/", 40) + "file"
	desc := it.Description()
	if !strings.HasSuffix(desc, ellipsis) {
		t.Errorf("long description not truncated: %q", desc)
	}
}
