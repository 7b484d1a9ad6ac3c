package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type implLogger struct {
	zl zerolog.Logger
}

// New creates a console Logger writing to stdout
func New(level string) Logger {
	return NewWithFormat(level, "text")
}

// NewWithFormat creates a Logger; format "json" emits one JSON object per line,
// anything else uses the human-readable console writer.
func NewWithFormat(level, format string) Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		out = os.Stdout
	}
	return newWithWriter(out, level)
}

func newWithWriter(w io.Writer, level string) *implLogger {
	lvl := parseLevel(level)
	return &implLogger{
		zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}
}

// parseLevel is tolerant of case and common synonyms. Unknown values default to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "all", "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "none", "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (l *implLogger) log(ctx context.Context, lvl zerolog.Level, msg string, args []interface{}) {
	ev := l.zl.WithLevel(lvl)
	if ev == nil {
		return
	}
	for _, f := range fieldsFrom(ctx) {
		ev = ev.Str(f.key, f.value)
	}
	if len(args) == 0 {
		ev.Msg(msg)
		return
	}
	ev.Msgf(msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, zerolog.DebugLevel, msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, zerolog.InfoLevel, msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, zerolog.WarnLevel, msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, zerolog.ErrorLevel, msg, args)
}
