package log

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	charmlog "github.com/charmbracelet/log"
	"github.com/rs/xid"
)

var (
	defaultStylesOnce sync.Once
	defaultStyles     atomic.Pointer[Styles]
	defaultLoggerOnce sync.Once
	defaultLogger     atomic.Pointer[slog.Logger]
)

func initializeStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		levelStr := strings.ToUpper(LogLevelString(ls.level))
		if len(levelStr) < ls.maxWidth {
			levelStr = levelStr + strings.Repeat(" ", ls.maxWidth-len(levelStr))
		}
		styles.Levels[ls.level] = ls.style.SetString(levelStr)
	}
	return styles
}

// DefaultStyles returns the initialized styles with all levels including Important
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		defaultStyles.Store(initializeStyles())
	})
	return defaultStyles.Load()
}

// New creates a new logger with the given options.
// Every record carries the run_id of the current process so the lines of
// one invocation can be picked out of a shared log file.
func New(opts ...Option) *slog.Logger {
	o := DefaultOptions()
	o.Apply(opts...)

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles)
	if o.RunID {
		handler = handler.With("run_id", runID)
	}

	logger := slog.New(handler)

	if o.Default {
		charmlog.SetDefault(handler)
		slog.SetDefault(logger)
		defaultLogger.Store(logger)
	}

	return logger
}

var runID = xid.New().String()

// Default returns the default logger instance
func Default() *slog.Logger {
	defaultLoggerOnce.Do(func() {
		if defaultLogger.Load() == nil {
			defaultLogger.Store(New(AsDefault()))
		}
	})
	return defaultLogger.Load()
}

// Reset resets all global state (useful for testing)
func Reset() {
	defaultStylesOnce = sync.Once{}
	defaultStyles.Store(nil)
	defaultLoggerOnce = sync.Once{}
	defaultLogger.Store(nil)
}

func handler() *charmlog.Logger {
	return Default().Handler().(*charmlog.Logger)
}

// Important logs at a level above warn
func Important(msg string, args ...any) { handler().Log(ImportantLevel, msg, args...) }
