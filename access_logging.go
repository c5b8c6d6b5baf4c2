package dotpath

import (
	"context"
	"log/slog"
	"time"
)

// AccessOp names the document operation being logged.
type AccessOp string

const (
	OpGet      AccessOp = "get"
	OpGetMany  AccessOp = "get_many"
	OpDefault  AccessOp = "default"
	OpSet      AccessOp = "set"
	OpSetMany  AccessOp = "set_many"
	OpDelete   AccessOp = "delete"
	OpHas      AccessOp = "has"
	OpHasAny   AccessOp = "has_any"
	OpLayer    AccessOp = "layer"
	OpActivity AccessOp = "activity"
)

// AccessEvent describes one document access for logging.
type AccessEvent struct {
	Op       AccessOp
	Paths    []string
	Segment  string
	Duration time.Duration
	Err      error
}

// AccessLogger records document access events.
type AccessLogger interface {
	LogAccess(AccessEvent)
}

// AccessLoggerFunc adapts a function to AccessLogger.
type AccessLoggerFunc func(AccessEvent)

// LogAccess implements AccessLogger.
func (f AccessLoggerFunc) LogAccess(event AccessEvent) {
	if f != nil {
		f(event)
	}
}

type noopAccessLogger struct{}

func (noopAccessLogger) LogAccess(AccessEvent) {}

// WithAccessLogger attaches an access logger to the document.
func WithAccessLogger(logger AccessLogger) Option {
	return func(cfg *documentConfig) {
		if logger == nil {
			cfg.logger = noopAccessLogger{}
			return
		}
		cfg.logger = logger
	}
}

// SlogAccessLogger writes access events through a slog.Logger. Events that
// carry an error are logged at warn level regardless of Level.
type SlogAccessLogger struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewSlogAccessLogger logs at debug level through logger, or slog.Default
// when logger is nil.
func NewSlogAccessLogger(logger *slog.Logger) *SlogAccessLogger {
	return &SlogAccessLogger{Logger: logger, Level: slog.LevelDebug}
}

// LogAccess implements AccessLogger.
func (l *SlogAccessLogger) LogAccess(event AccessEvent) {
	if l == nil {
		return
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := l.Level
	attrs := []slog.Attr{
		slog.String("op", string(event.Op)),
		slog.Any("paths", event.Paths),
		slog.Duration("duration", event.Duration),
	}
	if event.Segment != "" {
		attrs = append(attrs, slog.String("segment", event.Segment))
	}
	if event.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	logger.LogAttrs(context.Background(), level, "dotpath access", attrs...)
}

func (d *Document) logAccess(op AccessOp, start time.Time, err error, paths ...string) {
	event := AccessEvent{Op: op, Paths: paths, Err: err}
	if !start.IsZero() {
		event.Duration = time.Since(start)
	}
	d.cfg.accessLogger().LogAccess(event)
}
