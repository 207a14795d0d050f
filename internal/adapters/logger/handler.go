package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

const (
	colorSlate  = "#667085"
	colorYellow = "#F59E0B"
	colorRed    = "#D93025"
)

// ConsoleHandler is a slog.Handler for terminal output.
//
// The first line of a message carries the level marker and color. Any
// further lines, such as the "Caused by" part of an error block, are
// written faint so the headline stands out. Attributes are appended to the
// first line as key=value. Colors are disabled when NO_COLOR is set.
type ConsoleHandler struct {
	out     *termenv.Output
	profile termenv.Profile
	level   slog.Level
	suffix string
	group  string
}

// NewConsoleHandler creates a handler writing to w, or stderr when w is nil.
func NewConsoleHandler(w io.Writer, level slog.Level) *ConsoleHandler {
	if w == nil {
		w = os.Stderr
	}
	profile := colorProfile()
	return &ConsoleHandler{
		out:     termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true)),
		profile: profile,
		level:   level,
	}
}

func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	marker, color := levelStyle(r.Level)

	head, rest, _ := strings.Cut(r.Message, "\n")
	head = marker + head + h.suffix
	r.Attrs(func(attr slog.Attr) bool {
		head += " " + h.key(attr.Key) + "=" + attr.Value.String()
		return true
	})

	if h.profile != termenv.Ascii {
		head = h.out.String(head).Foreground(h.out.Color(color)).String()
		if rest != "" {
			rest = h.out.String(rest).Faint().String()
		}
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteByte('\n')
	if rest != "" {
		b.WriteString(rest)
		b.WriteByte('\n')
	}

	_, err := h.out.WriteString(b.String())
	return err
}

func levelStyle(level slog.Level) (marker, color string) {
	switch {
	case level >= slog.LevelError:
		return "✗ ", colorRed
	case level >= slog.LevelWarn:
		return "! ", colorYellow
	default:
		return "", colorSlate
	}
}

func (h *ConsoleHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	for _, attr := range attrs {
		c.suffix += " " + h.key(attr.Key) + "=" + attr.Value.String()
	}
	return &c
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.group = h.key(name)
	return &c
}
