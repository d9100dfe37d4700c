package engine

import (
	"log/slog"
)

// Empty purges every entry and then truncates the relocation log.
// The bin directory itself stays in place. When some entries cannot be
// deleted the log is kept so the survivors remain restorable.
func (e *Engine) Empty() error {
	slog.Debug("engine.empty started")
	defer slog.Debug("engine.empty finished")

	if err := e.ensure(); err != nil {
		return err
	}
	if err := e.store.PurgeAll(); err != nil {
		return err
	}
	return e.log.Truncate()
}
