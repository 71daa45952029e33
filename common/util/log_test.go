package util

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := SetTrace(context.Background(), NewLogger("engagement.api", buf, slog.LevelDebug))
	logger.Info("user toggle like", "userId", 7)

	line := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "engagement.api", line["ServiceName"])
	require.Contains(t, line, "TraceId")
	require.Contains(t, line, "SpanId")
	require.Equal(t, float64(7), line["detail"].(map[string]any)["userId"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelInfo, ParseLevel("nope"))
}
