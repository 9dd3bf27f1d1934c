package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Indirection for stdout so tests can capture console output.
var (
	osStdout io.Writer = os.Stdout
	osPipe             = os.Pipe
)

// SlogManager owns the application logger: console plus an optional
// session log file, with a shared level and time format.
type SlogManager struct {
	logger *slog.Logger
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system. If file is non-nil every record
// also goes to it; sessionID, when non-empty, is attached to every
// record so interleaved session logs stay attributable.
func (m *SlogManager) Setup(file io.Writer, level, sessionID string) {
	lvl := parseLevel(level)

	// Common handler options with RFC3339 time formatting
	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler
	handlers = append(handlers, slog.NewTextHandler(osStdout, handlerOpts))
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	var handler slog.Handler = NewMultiHandler(handlers...)
	if sessionID != "" {
		handler = NewContextHandler(handler, func() []slog.Attr {
			return []slog.Attr{slog.String("session", sessionID)}
		})
	}

	m.logger = slog.New(handler)
	m.logger.Info("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}
