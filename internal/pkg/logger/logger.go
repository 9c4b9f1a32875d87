package logger

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Config selects the slog handler.
type Config struct {
	Verbose bool
	// Quiet drops warnings. Verbose takes precedence.
	Quiet  bool
	Format string
	Output io.Writer
}

// SlogLogger implements ports.Logger on top of log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// New builds a logger. Verbose enables debug output; otherwise only warnings and errors are written,
// or only errors when Quiet is set.
func New(cfg Config) *SlogLogger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := slog.LevelWarn
	switch {
	case cfg.Verbose:
		level = slog.LevelDebug
	case cfg.Quiet:
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *SlogLogger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, attrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, attrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, attrs(fields)...)
}

func (l *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	l.logger.Error(msg, args...)
}

// attrs converts fields to slog attributes in key order so output is stable.
func attrs(fields map[string]interface{}) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}
