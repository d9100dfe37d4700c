package ui

import (
	"fmt"
	"path/filepath"

	"github.com/babarot/rsycle/internal/engine"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

const (
	absoluteTimeFormat = "2006-01-02 15:04:05"
	ellipsis           = "…"
	maxDescWidth       = defaultWidth - 4
)

// item adapts an engine.Item to the bubbles list
type item struct {
	engine.Item
	dateFormat string
}

// Title returns the original name, with a slash for directories
func (i item) Title() string {
	if i.IsDir {
		return i.Base + "/"
	}
	return i.Base
}

// Description returns when the item was recycled and where it came from
func (i item) Description() string {
	desc := fmt.Sprintf("%s • %s", formatTime(i.Item, i.dateFormat), filepath.Dir(i.Original))
	return ansi.Truncate(desc, maxDescWidth, ellipsis)
}

func (i item) FilterValue() string {
	return i.Base
}

func formatTime(it engine.Item, dateFormat string) string {
	if dateFormat == "absolute" {
		return it.RecycledAt().Format(absoluteTimeFormat)
	}
	return humanize.Time(it.RecycledAt())
}
