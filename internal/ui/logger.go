package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// ParseLogLevel maps a level name from the config or the command line to a pterm level
func ParseLogLevel(name string) (pterm.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return pterm.LogLevelTrace, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	case "off", "disabled":
		return pterm.LogLevelDisabled, nil
	default:
		return pterm.LogLevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger returns a pterm logger writing to w at the given level
func NewLogger(w io.Writer, level pterm.LogLevel) *pterm.Logger {
	return pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(level)
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *pterm.Logger {
	return NewLogger(io.Discard, pterm.LogLevelDisabled)
}

// OrDiscard returns l, or a discarding logger when l is nil
func OrDiscard(l *pterm.Logger) *pterm.Logger {
	if l == nil {
		return DiscardLogger()
	}
	return l
}
