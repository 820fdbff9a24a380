// Package logging builds the JSON line loggers used across the service and carries
// the request id through contexts so adapter and service logs can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

type ctxKey struct{}

// New returns a JSON line logger. Every entry carries "ts" formatted as RFC3339Nano
// in loc, "level" in lower case and "msg".
func New(w io.Writer, loc *time.Location) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			case slog.LevelKey:
				return slog.String("level", lowerLevel(a.Value.Any()))
			}
			return a
		},
	})
	return slog.New(h)
}

// Setup builds the process logger on stdout and installs it as the slog default.
func Setup(timezone string) (*slog.Logger, *time.Location) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	logger := New(os.Stdout, loc)
	slog.SetDefault(logger)
	if err != nil {
		logger.Warn("invalid log timezone, using UTC", "timezone", timezone, "error", err)
	}
	return logger, loc
}

// WithRequestID stores the request id for loggers derived with FromContext.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// FromContext returns the default logger annotated with the request id in ctx.
func FromContext(ctx context.Context) *slog.Logger {
	if id := RequestID(ctx); id != "" {
		return slog.Default().With("request_id", id)
	}
	return slog.Default()
}

func lowerLevel(v any) string {
	l, ok := v.(slog.Level)
	if !ok {
		return "info"
	}
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warn"
	case l >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
