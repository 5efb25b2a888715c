package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Handler environments.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Setup builds the process logger. local gets the colored handler, dev and
// prod emit JSON. scrub, when non-nil, is applied to every string and error
// attribute and to the message.
func Setup(env, level string, w io.Writer, scrub func(string) string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: scrubAttr(scrub),
	}

	var h slog.Handler
	switch env {
	case EnvDev, EnvProd:
		h = slog.NewJSONHandler(w, opts)
	default:
		h = PrettyHandlerOptions{SlogOpts: opts}.NewPrettyHandler(w)
	}
	if scrub != nil {
		h = &scrubHandler{Handler: h, scrub: scrub}
	}
	return slog.New(h)
}

// ParseLevel maps debug, info, warn and error to slog levels; anything else
// is info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Err wraps an error as a log attribute.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func scrubAttr(scrub func(string) string) func([]string, slog.Attr) slog.Attr {
	if scrub == nil {
		return nil
	}
	return func(_ []string, a slog.Attr) slog.Attr {
		switch a.Value.Kind() {
		case slog.KindString:
			a.Value = slog.StringValue(scrub(a.Value.String()))
		case slog.KindAny:
			if err, ok := a.Value.Any().(error); ok {
				a.Value = slog.StringValue(scrub(err.Error()))
			}
		}
		return a
	}
}
