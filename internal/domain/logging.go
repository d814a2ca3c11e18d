package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// ProjectLogFactory opens the log handler of one project workspace. The
// closer is called when the project is done.
type ProjectLogFactory func(ws m.Workspace) (slog.Handler, io.Closer, error)

// fanoutHandler sends every record to all handlers that accept its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func newFanoutHandler(handlers ...slog.Handler) *fanoutHandler {
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error

	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler.WithAttrs(attrs))
	}

	return newFanoutHandler(handlers...)
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler.WithGroup(name))
	}

	return newFanoutHandler(handlers...)
}

// redirectProjectLog tees the default logger into the project's own log
// until the returned function is called.
func redirectProjectLog(factory ProjectLogFactory, ws m.Workspace, project string) func() {
	if factory == nil {
		return func() {}
	}

	handler, closer, err := factory(ws)
	if err != nil {
		slog.Warn("Failed to open project log", "project", project, "error", err)
		return func() {}
	}

	previous := slog.Default()
	slog.SetDefault(slog.New(newFanoutHandler(previous.Handler(), handler)).With("project", project))

	return func() {
		slog.SetDefault(previous)

		if err := closer.Close(); err != nil {
			slog.Warn("Failed to close project log", "project", project, "error", err)
		}
	}
}
