package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"al.essio.dev/pkg/shellescape"
	"github.com/babarot/rsycle/internal/core"
	"github.com/babarot/rsycle/internal/fs"
)

func (c *CLI) Recycle(args []string) error {
	slog.Debug("cli.recycle started")
	defer slog.Debug("cli.recycle finished")

	var errs multiError
	for _, arg := range args {
		if err := c.recycle(arg); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *CLI) recycle(arg string) error {
	unsafe, err := fs.IsUnsafePath(arg)
	if err != nil {
		return err
	}
	if unsafe {
		return fmt.Errorf("refusing to recycle %s", shellescape.Quote(arg))
	}

	rec, err := c.engine.Recycle(arg)
	if err != nil {
		if c.option.Rm.Force && errors.Is(err, core.ErrFileNotFound) {
			slog.Debug("ignoring nonexistent file", "target", arg)
			return nil
		}
		return fmt.Errorf("%s: %w", arg, err)
	}

	if c.option.Rm.Verbose || c.config.Core.Recycle.Verbose {
		fmt.Fprintf(c.stdout, "recycled %s -> %s\n",
			shellescape.Quote(rec.Original), shellescape.Quote(rec.Relocated))
	}
	return nil
}
