package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"al.essio.dev/pkg/shellescape"
	"github.com/babarot/rsycle/internal/log"
	"github.com/fatih/color"
)

var errNoTerminal = errors.New("--empty needs a terminal to confirm: pass -f or set core.empty.confirm to false")

func (c *CLI) Empty() error {
	slog.Debug("cli.empty started")
	defer slog.Debug("cli.empty finished")

	if c.config.Core.Empty.Confirm && !c.option.Rm.Force {
		if !c.interactive() {
			return errNoTerminal
		}
		items, err := c.engine.Items()
		if err != nil {
			return err
		}
		prompt := fmt.Sprintf("Permanently delete %d entries in %s?", len(items), shellescape.Quote(c.engine.BinDir()))
		ok, err := c.confirm(prompt)
		if err != nil {
			return err
		}
		if !ok {
			slog.Debug("empty declined")
			return nil
		}
	}

	if err := c.engine.Empty(); err != nil {
		return err
	}
	log.Important("bin emptied", "bin", c.engine.BinDir())
	color.New(color.FgGreen).Fprintln(c.stdout, "bin emptied")
	return nil
}
