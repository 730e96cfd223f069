package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: zerolog.InfoLevel, Format: FormatJSON, App: "portal", Out: &buf})

	log.Debug("hidden", nil)
	log.With(map[string]any{"request_id": "r-1", "": "dropped"}).Info("hello", map[string]any{"status": 200})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "portal", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.EqualValues(t, 200, entry["status"])
	_, hasEmpty := entry[""]
	assert.False(t, hasEmpty)
}
