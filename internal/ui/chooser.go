package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/babarot/rsycle/internal/config"
	"github.com/babarot/rsycle/internal/core"
	"github.com/babarot/rsycle/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

// Chooser presents held items in a terminal list and returns the picked one
type Chooser struct {
	cfg  config.UI
	opts []tea.ProgramOption
}

// NewChooser returns a Chooser. Program options are passed to bubbletea as is.
func NewChooser(cfg config.UI, opts ...tea.ProgramOption) *Chooser {
	return &Chooser{cfg: cfg, opts: opts}
}

// PresentChoices blocks until an item is picked. Backing out returns core.ErrCanceled.
func (c *Chooser) PresentChoices(items []engine.Item) (engine.Item, error) {
	if len(items) == 0 {
		return engine.Item{}, errors.New("nothing to choose from")
	}

	p := tea.NewProgram(newModel(items, c.cfg), c.opts...)
	final, err := p.Run()
	if err != nil {
		return engine.Item{}, fmt.Errorf("chooser: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return engine.Item{}, fmt.Errorf("chooser: unexpected model %T", final)
	}
	if m.chosen == nil {
		slog.Debug("chooser canceled")
		return engine.Item{}, core.ErrCanceled
	}
	slog.Debug("chooser picked", "entry", m.chosen.Path)
	return *m.chosen, nil
}
