package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/babarot/rsycle/internal/bin"
)

// Prune permanently deletes the entries recycled more than age ago and
// returns how many were deleted. Entries not placed by rsycle are left alone.
// Log records of pruned entries stay behind; restore skips them.
func (e *Engine) Prune(age time.Duration) (int, error) {
	slog.Debug("engine.prune started", "age", age)
	defer slog.Debug("engine.prune finished")

	if age <= 0 {
		return 0, fmt.Errorf("prune age must be positive, got %s", age)
	}
	if err := e.ensure(); err != nil {
		return 0, err
	}

	cutoff := e.now().Add(-age)
	return e.store.Purge(func(entry bin.Entry) bool {
		return entry.Managed && entry.RecycledAt().Before(cutoff)
	})
}
