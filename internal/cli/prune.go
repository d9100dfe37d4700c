package cli

import (
	"fmt"
	"log/slog"

	"github.com/babarot/rsycle/internal/log"
	"github.com/fatih/color"
	"github.com/k1LoW/duration"
)

func (c *CLI) Prune(age string) error {
	slog.Debug("cli.prune started", "age", age)
	defer slog.Debug("cli.prune finished")

	d, err := duration.Parse(age)
	if err != nil {
		return fmt.Errorf("invalid prune age %q: %w", age, err)
	}

	n, err := c.engine.Prune(d)
	if err != nil {
		return err
	}
	log.Important("bin pruned", "removed", n, "older_than", age)
	color.New(color.FgGreen).Fprintf(c.stdout, "pruned %d entries older than %s\n", n, age)
	return nil
}
