package logging

import (
	"context"
	"log/slog"
)

// ContextProvider supplies attributes evaluated per record, such as
// the current session ID.
type ContextProvider func() []slog.Attr

// ContextHandler stamps every record with the attributes a provider
// returns at log time, values that are not fixed when the logger is
// built.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
}

// NewContextHandler wraps inner. A nil provider passes records through
// untouched.
func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{
		inner:    inner,
		provider: provider,
	}
}

// Enabled delegates to the inner handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle appends the provider attributes and forwards the record.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		attrs := h.provider()
		r.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs pushes the attributes down to the inner handler; the
// provider still runs per record.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		inner:    h.inner.WithAttrs(attrs),
		provider: h.provider,
	}
}

// WithGroup opens the group on the inner handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{
		inner:    h.inner.WithGroup(name),
		provider: h.provider,
	}
}
