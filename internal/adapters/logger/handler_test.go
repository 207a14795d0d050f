package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/wikipath/internal/adapters/logger"
)

func TestConsoleHandler_Lines(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name string
		log  func(*slog.Logger)
		want string
	}{
		{
			name: "info",
			log:  func(l *slog.Logger) { l.Info("loaded graph cache") },
			want: "loaded graph cache\n",
		},
		{
			name: "error block",
			log:  func(l *slog.Logger) { l.Error("Error: failed\n\n  Caused by:\n    → EOF") },
			want: "✗ Error: failed\n\n  Caused by:\n    → EOF\n",
		},
		{
			name: "attributes",
			log: func(l *slog.Logger) {
				l.With("corpus", "dump.xml").WithGroup("cache").Warn("unusable", "version", 7)
			},
			want: "! unusable corpus=dump.xml cache.version=7\n",
		},
		{
			name: "below level",
			log:  func(l *slog.Logger) { l.Debug("hidden") },
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(logger.NewConsoleHandler(&buf, slog.LevelInfo)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleHandler_Enabled(t *testing.T) {
	h := logger.NewConsoleHandler(nil, slog.LevelWarn)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}
