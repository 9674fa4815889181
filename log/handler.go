package log

import (
	"context"
	"io"
	"log/slog"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, r slog.Record) error {
	return nil
}

func (h *discardHandler) Enabled(_ context.Context, level slog.Level) bool {
	return false
}

func (h *discardHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

// NewTerminalHandlerWithLevel returns a text handler which renders the custom
// trace/crit levels by name.  When useTime is false, the timestamp is
// omitted (useful for golden output).
func NewTerminalHandlerWithLevel(
	w io.Writer,
	level slog.Level,
	useTime bool,
) slog.Handler {
	return slog.NewTextHandler(
		w,
		&slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if len(groups) > 0 {
					return attr
				}

				switch attr.Key {
				case slog.TimeKey:
					if !useTime {
						return slog.Attr{}
					}
				case slog.LevelKey:
					lvl, ok := attr.Value.Any().(slog.Level)
					if ok {
						attr.Value = slog.StringValue(LevelString(lvl))
					}
				}
				return attr
			},
		})
}
