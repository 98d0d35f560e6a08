package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// sink is one named destination of a teeHandler.
type sink struct {
	name    string
	handler slog.Handler
}

// teeHandler copies every record to each sink whose own level admits it.
// The console sink keeps its configured format while the rolling file
// always receives JSON.
type teeHandler struct {
	sinks []sink
}

func newTeeHandler(sinks ...sink) *teeHandler {
	return &teeHandler{sinks: sinks}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle writes to every enabled sink even if an earlier one fails. A full
// disk under the log file must not silence the console.
func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, s := range h.sinks {
		if !s.handler.Enabled(ctx, r.Level) {
			continue
		}

		if err := s.handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, fmt.Errorf("%s log: %w", s.name, err))
		}
	}

	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(sh slog.Handler) slog.Handler { return sh.WithAttrs(attrs) })
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return h.derive(func(sh slog.Handler) slog.Handler { return sh.WithGroup(name) })
}

func (h *teeHandler) derive(fn func(slog.Handler) slog.Handler) *teeHandler {
	sinks := make([]sink, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = sink{name: s.name, handler: fn(s.handler)}
	}

	return newTeeHandler(sinks...)
}
