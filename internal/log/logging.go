// Package log builds the slog.Logger used by the command line.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, records go to stderr and to the file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace is a slog level below Debug for very verbose output.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name onto a slog level. Unknown names select info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// multiHandler fans out records to multiple handlers.
type multiHandler struct{ hs []slog.Handler }

func newMultiHandler(hs ...slog.Handler) multiHandler {
	return multiHandler{hs: hs}
}

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}

	return nil
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}

	return multiHandler{hs: out}
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}

	return multiHandler{hs: out}
}

// levelFilter passes to an underlying handler only the levels pass accepts.
type levelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func newLevelFilter(pass func(slog.Level) bool, h slog.Handler) levelFilter {
	return levelFilter{pass: pass, h: h}
}

func (f levelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	if !f.pass(level) {
		return false
	}

	return f.h.Enabled(ctx, level)
}

func (f levelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}

	return f.h.Handle(ctx, r)
}

func (f levelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f levelFilter) WithGroup(name string) slog.Handler {
	return levelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// SetupLogger builds a logger with console and optional file handlers. The
// returned closers must be closed when the logger is no longer used.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	return setup(logLevel, logFile, os.Stdout, os.Stderr)
}

func setup(logLevel, logFile string, stdout, stderr io.Writer) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)

	var handlers []slog.Handler

	if logFile == "" {
		handlers = append(handlers,
			newLevelFilter(func(l slog.Level) bool { return l < slog.LevelError },
				slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level})),
			newLevelFilter(func(l slog.Level) bool { return l >= slog.LevelError },
				slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError})),
		)

		return slog.New(newMultiHandler(handlers...)), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	handlers = append(handlers,
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
		slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}),
	)

	return slog.New(newMultiHandler(handlers...)), []io.Closer{f}, nil
}
