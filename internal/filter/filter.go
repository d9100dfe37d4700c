package filter

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"time"

	"github.com/babarot/rsycle/internal/config"
	"github.com/babarot/rsycle/internal/fs"
	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
)

// Filterable defines what a listed item must expose to be filtered
type Filterable interface {
	// GetName returns the original name of the file
	GetName() string
	// GetPath returns the current path in the bin
	GetPath() string
	// GetDeletedAt returns when the file was recycled
	GetDeletedAt() time.Time
}

// Options holds filtering configuration
type Options struct {
	Include config.IncludeConfig
	Exclude config.ExcludeConfig
}

// Filter applies the list.include and list.exclude rules to items
func Filter[T Filterable](items []T, opts Options) []T {
	return filter(items, opts, fs.DirSize, time.Now())
}

func filter[T Filterable](items []T, opts Options, sizeOf func(string) (int64, error), now time.Time) []T {
	items = rejectByNames(items, opts.Exclude.Files)
	items = rejectByPatterns(items, opts.Exclude.Patterns)
	items = rejectByGlobs(items, opts.Exclude.Globs)
	items = rejectBySize(items, opts.Exclude.Size, sizeOf)
	items = filterByPeriod(items, opts.Include.Period, now)
	return items
}

func rejectByNames[T Filterable](items []T, excludeFiles []string) []T {
	if len(excludeFiles) == 0 {
		return items
	}
	return slices.DeleteFunc(slices.Clone(items), func(item T) bool {
		return slices.Contains(excludeFiles, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}

	var res []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Warn("skipping invalid exclude pattern", "pattern", p, "error", err)
			continue
		}
		res = append(res, re)
	}

	return slices.DeleteFunc(slices.Clone(items), func(item T) bool {
		return slices.ContainsFunc(res, func(re *regexp.Regexp) bool {
			return re.MatchString(item.GetName())
		})
	})
}

func rejectByGlobs[T Filterable](items []T, globs []string) []T {
	if len(globs) == 0 {
		return items
	}

	var gs []glob.Glob
	for _, g := range globs {
		compiled, err := glob.Compile(g)
		if err != nil {
			slog.Warn("skipping invalid exclude glob", "glob", g, "error", err)
			continue
		}
		gs = append(gs, compiled)
	}

	return slices.DeleteFunc(slices.Clone(items), func(item T) bool {
		return slices.ContainsFunc(gs, func(g glob.Glob) bool {
			return g.Match(item.GetName())
		})
	})
}

func rejectBySize[T Filterable](items []T, size config.SizeConfig, sizeOf func(string) (int64, error)) []T {
	if size.Min == "" && size.Max == "" {
		return items
	}

	var filtered []T
	for _, item := range items {
		dirSize, err := sizeOf(item.GetPath())
		if err != nil {
			slog.Debug("skipping item that cannot be sized", "path", item.GetPath(), "error", err)
			continue
		}

		include := true
		if size.Min != "" {
			if min, err := units.FromHumanSize(size.Min); err == nil && dirSize <= min {
				include = false
			}
		}
		if size.Max != "" {
			if max, err := units.FromHumanSize(size.Max); err == nil && max <= dirSize {
				include = false
			}
		}
		if include {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func filterByPeriod[T Filterable](items []T, period int, now time.Time) []T {
	if period <= 0 {
		return items
	}

	d, err := duration.Parse(fmt.Sprintf("%d days", period))
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return items
	}

	var filtered []T
	for _, item := range items {
		if now.Sub(item.GetDeletedAt()) < d {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
