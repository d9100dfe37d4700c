package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"al.essio.dev/pkg/shellescape"
	"github.com/babarot/rsycle/internal/core"
	"github.com/babarot/rsycle/internal/engine"
	"github.com/babarot/rsycle/internal/filter"
	"github.com/babarot/rsycle/internal/fs"
	"github.com/babarot/rsycle/internal/history"
)

func (c *CLI) Restore(args []string) error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	var (
		rec history.Record
		err error
	)
	if len(args) == 0 {
		rec, err = c.engine.RestoreInteractive(filteredChooser{
			chooser: c.chooser,
			opts: filter.Options{
				Include: c.config.List.Include,
				Exclude: c.config.List.Exclude,
			},
		})
		if errors.Is(err, core.ErrCanceled) {
			return nil
		}
	} else {
		unsafe, uerr := fs.IsUnsafePath(args[0])
		if uerr != nil {
			return uerr
		}
		if unsafe {
			return fmt.Errorf("refusing to restore %s", shellescape.Quote(args[0]))
		}
		rec, err = c.engine.Restore(args[0])
	}
	if err != nil {
		return err
	}

	if c.config.Core.Restore.Verbose || c.option.Rm.Verbose {
		fmt.Fprintf(c.stdout, "restored %s\n", shellescape.Quote(rec.Original))
	}
	return nil
}

// filteredChooser hides the items excluded by the list config before asking
type filteredChooser struct {
	chooser engine.Chooser
	opts    filter.Options
}

func (f filteredChooser) PresentChoices(items []engine.Item) (engine.Item, error) {
	filtered := filter.Filter(items, f.opts)
	if len(filtered) == 0 {
		return engine.Item{}, errors.New("no files match the filter criteria")
	}
	return f.chooser.PresentChoices(filtered)
}
