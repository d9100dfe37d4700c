package log

import (
	"fmt"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type (
	Level     = charmlog.Level
	Styles    = charmlog.Styles
	Formatter = charmlog.Formatter
)

const (
	DebugLevel     = charmlog.DebugLevel
	InfoLevel      = charmlog.InfoLevel
	WarnLevel      = charmlog.WarnLevel
	ErrorLevel     = charmlog.ErrorLevel
	FatalLevel     = charmlog.FatalLevel
	ImportantLevel = WarnLevel + 1
)

const (
	TextFormatter   = charmlog.TextFormatter
	JSONFormatter   = charmlog.JSONFormatter
	LogfmtFormatter = charmlog.LogfmtFormatter
)

// LogLevelString returns the string representation of the level
func LogLevelString(l Level) string {
	switch l {
	case ImportantLevel:
		return " IMPORTANT "
	default:
		return l.String()
	}
}

// ParseFormatter converts a config format name into a Formatter
func ParseFormatter(s string) (Formatter, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return TextFormatter, nil
	case "json":
		return JSONFormatter, nil
	case "logfmt":
		return LogfmtFormatter, nil
	default:
		return TextFormatter, fmt.Errorf("invalid log format %q", s)
	}
}

// ParseLevel converts a config level name into a Level
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return InfoLevel, nil
	}
	l, err := charmlog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
