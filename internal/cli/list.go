package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/babarot/rsycle/internal/engine"
	"github.com/babarot/rsycle/internal/filter"
	"github.com/babarot/rsycle/internal/fs"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gabriel-vasile/mimetype"
	"github.com/olekukonko/tablewriter"
)

func (c *CLI) List() error {
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	items, err := c.engine.Items()
	if err != nil {
		return err
	}
	items = filter.Filter(items, filter.Options{
		Include: c.config.List.Include,
		Exclude: c.config.List.Exclude,
	})

	if len(items) == 0 {
		color.New(color.FgYellow).Fprintf(c.stdout, "bin %s is empty\n", shellescape.Quote(c.engine.BinDir()))
		return nil
	}

	table := tablewriter.NewWriter(c.stdout)
	table.SetHeader([]string{"Original", "Current", "Recycled At", "Size", "Kind"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, item := range items {
		table.Append([]string{
			originalOf(item),
			item.Current(),
			c.formatTime(item.RecycledAt()),
			sizeOf(item),
			kindOf(item),
		})
	}
	table.Render()
	return nil
}

func originalOf(item engine.Item) string {
	if item.Original == "" {
		return "(unknown)"
	}
	return item.Original
}

func (c *CLI) formatTime(t time.Time) string {
	if c.config.UI.DateFormat == "absolute" {
		return t.Format(time.DateTime)
	}
	return humanize.Time(t)
}

func sizeOf(item engine.Item) string {
	if item.IsDir {
		size, err := fs.DirSize(item.Path)
		if err != nil {
			return "-"
		}
		return humanize.Bytes(uint64(size))
	}
	info, err := os.Lstat(item.Path)
	if err != nil {
		return "-"
	}
	return humanize.Bytes(uint64(info.Size()))
}

func kindOf(item engine.Item) string {
	if item.IsDir {
		return "directory"
	}
	info, err := os.Lstat(item.Path)
	if err != nil {
		return "-"
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return "symlink"
	}
	mtype, err := mimetype.DetectFile(item.Path)
	if err != nil {
		return fmt.Sprintf("unknown (%v)", err)
	}
	return mtype.String()
}
