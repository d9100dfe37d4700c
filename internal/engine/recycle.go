package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/babarot/rsycle/internal/core"
	"github.com/babarot/rsycle/internal/history"
)

// Recycle moves the named file or directory into the bin.
//
// The relocation is logged before the move: a log record pointing at a file
// that never reached the bin is harmless (restore skips it), whereas an entry
// in the bin without a record could not be restored.
func (e *Engine) Recycle(name string) (history.Record, error) {
	slog.Debug("engine.recycle started", "name", name)
	defer slog.Debug("engine.recycle finished", "name", name)

	if err := e.ensure(); err != nil {
		return history.Record{}, err
	}

	original, err := e.resolver.Resolve(name)
	if err != nil {
		return history.Record{}, err
	}

	if _, err := os.Lstat(original); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return history.Record{}, core.NewOpError("recycle", original, core.ErrFileNotFound)
		}
		return history.Record{}, core.NewOpError("recycle", original, err)
	}

	if e.overlapsBin(original) {
		return history.Record{}, errOverlap(original)
	}

	entry, err := e.store.Next(original)
	if err != nil {
		return history.Record{}, err
	}

	if err := e.log.Append(original, entry.Path); err != nil {
		return history.Record{}, err
	}

	if err := e.store.PlaceAt(original, entry); err != nil {
		slog.Warn("relocation logged but move failed; record left dangling",
			"original", original, "entry", entry.Path, "error", err)
		return history.Record{}, fmt.Errorf("recycle %s: %w", original, err)
	}

	slog.Info("recycled", "original", original, "entry", entry.Path)
	return history.Record{Original: original, Relocated: entry.Path}, nil
}
