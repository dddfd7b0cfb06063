package logger

import (
	"context"
	"log/slog"
)

// teeHandler fans a record out to several handlers. Errors from secondary
// sinks are swallowed: logging must never fail application code.
type teeHandler struct {
	handlers []slog.Handler
}

// Tee combines handlers into one. The first handler decides Enabled.
func Tee(handlers ...slog.Handler) slog.Handler {
	return &teeHandler{handlers: handlers}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.handlers[0].Enabled(ctx, level)
}

func (t *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	err := t.handlers[0].Handle(ctx, r.Clone())
	for _, h := range t.handlers[1:] {
		_ = h.Handle(ctx, r.Clone())
	}
	return err
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = h.WithAttrs(attrs)
	}
	return &teeHandler{handlers: out}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = h.WithGroup(name)
	}
	return &teeHandler{handlers: out}
}
