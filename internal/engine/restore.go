package engine

import (
	"log/slog"

	"github.com/babarot/rsycle/internal/core"
	"github.com/babarot/rsycle/internal/history"
)

// Chooser lets an operator pick one held item, or back out with core.ErrCanceled
type Chooser interface {
	PresentChoices(items []Item) (Item, error)
}

// Restore moves the most recently recycled entry for name back to its
// original path. Records whose entry already left the bin are skipped.
// A file at the original path is never overwritten.
func (e *Engine) Restore(name string) (history.Record, error) {
	slog.Debug("engine.restore started", "name", name)
	defer slog.Debug("engine.restore finished", "name", name)

	if err := e.ensure(); err != nil {
		return history.Record{}, err
	}

	original, err := e.resolver.Resolve(name)
	if err != nil {
		return history.Record{}, err
	}

	candidates, err := e.log.Candidates(original)
	if err != nil {
		return history.Record{}, err
	}

	var relocated string
	for _, c := range candidates {
		if e.store.Exists(c) {
			relocated = c
			break
		}
		slog.Debug("skipping record without bin entry", "relocated", c)
	}
	if relocated == "" {
		return history.Record{}, core.NewOpError("restore", original, core.ErrNoMatchingEntry)
	}

	return e.withdraw(history.Record{Original: original, Relocated: relocated})
}

// RestoreInteractive asks chooser which held item to restore
func (e *Engine) RestoreInteractive(chooser Chooser) (history.Record, error) {
	slog.Debug("engine.restore (interactive) started")
	defer slog.Debug("engine.restore (interactive) finished")

	items, err := e.Items()
	if err != nil {
		return history.Record{}, err
	}
	var restorable []Item
	for _, item := range items {
		if item.Original != "" {
			restorable = append(restorable, item)
		}
	}
	if len(restorable) == 0 {
		return history.Record{}, core.NewOpError("restore", e.BinDir(), core.ErrNoMatchingEntry)
	}

	chosen, err := chooser.PresentChoices(restorable)
	if err != nil {
		return history.Record{}, err
	}
	return e.withdraw(history.Record{Original: chosen.Original, Relocated: chosen.Path})
}

func (e *Engine) withdraw(r history.Record) (history.Record, error) {
	if err := e.store.Withdraw(r.Relocated, r.Original); err != nil {
		return history.Record{}, err
	}
	slog.Info("restored", "original", r.Original, "entry", r.Relocated)
	return r, nil
}
