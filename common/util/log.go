package util

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"
)

// InitLog path为空时输出到stdout
func InitLog(name string, path string, level slog.Level) (*slog.Logger, error) {
	var w io.Writer = os.Stdout
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		w = file
	}
	return NewLogger(name, w, level), nil
}

func NewLogger(name string, w io.Writer, level slog.Level) *slog.Logger {
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}))
	return l.With("ServiceName", name)
}

// ParseLevel 未知级别按info处理
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func SetTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	span := trace.SpanFromContext(ctx)
	return logger.With("TraceId", span.SpanContext().TraceID().String()).
		With("SpanId", span.SpanContext().SpanID().String()).
		WithGroup("detail")
}
