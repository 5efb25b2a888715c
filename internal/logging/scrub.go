package logging

import (
	"context"
	"log/slog"
)

// scrubHandler cleans the record message; ReplaceAttr does not see it.
type scrubHandler struct {
	slog.Handler
	scrub func(string) string
}

func (h *scrubHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, h.scrub(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(a)
		return true
	})
	return h.Handler.Handle(ctx, clean)
}

func (h *scrubHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &scrubHandler{Handler: h.Handler.WithAttrs(attrs), scrub: h.scrub}
}

func (h *scrubHandler) WithGroup(name string) slog.Handler {
	return &scrubHandler{Handler: h.Handler.WithGroup(name), scrub: h.scrub}
}
