package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", "warn", &buf)

	l.Info().Msg("dropped")
	l.Warn().Str("component", "test").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "test", entry["component"])
	assert.NotEmpty(t, entry["time"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", "loud", &buf)

	l.Debug().Msg("debug")
	assert.Empty(t, buf.String())

	l.Info().Msg("info")
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestNew_DevelopmentUsesConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New("development", "info", &buf)

	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestWithTrace(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", "info", &buf)

	t.Run("no span", func(t *testing.T) {
		buf.Reset()
		tl := WithTrace(context.Background(), l)
		tl.Info().Msg("x")
		assert.NotContains(t, buf.String(), "trace_id")
	})

	t.Run("with span", func(t *testing.T) {
		buf.Reset()
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{1, 2, 3},
			SpanID:  trace.SpanID{4, 5, 6},
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)

		tl := WithTrace(ctx, l)
		tl.Info().Msg("x")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, sc.TraceID().String(), entry["trace_id"])
		assert.Equal(t, sc.SpanID().String(), entry["span_id"])
	})
}
