package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndService(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf, Service: "test-svc"})

	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "test-svc", entry[FieldService])
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	l := New(Config{Level: "loud", Output: &bytes.Buffer{}})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestRequestIDRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		id   string
	}{
		{"background", context.Background(), "req-1"},
		{"nil context", nil, "req-2"},
		{"empty id", context.Background(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithRequestID(tt.ctx, tt.id)
			assert.Equal(t, tt.id, RequestIDFromContext(ctx))
		})
	}
	assert.Empty(t, RequestIDFromContext(nil))
}

func TestWithContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})
	ctx := ContextWithRequestID(context.Background(), "abc")

	WithContext(ctx, l).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry[FieldRequestID])
}

func TestWithContext_NoFieldsLeavesLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})

	WithContext(context.Background(), l).Info().Msg("plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, ok := entry[FieldRequestID]
	assert.False(t, ok)
}
