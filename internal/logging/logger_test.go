package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{" WARNING ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"quiet", zerolog.Disabled},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	tests := []struct {
		level   string
		logged  []string
		dropped []string
	}{
		{"trace", []string{"trace", "debug", "info"}, nil},
		{"info", []string{"info", "warn"}, []string{"trace", "debug"}},
		{"error", []string{"error"}, []string{"info", "warn"}},
		{"disabled", nil, []string{"info", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Output: &buf})

			logger.Trace().Msg("trace")
			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Warn().Msg("warn")
			logger.Error().Msg("error")

			out := buf.String()
			for _, msg := range tt.logged {
				assert.Contains(t, out, `"message":"`+msg+`"`)
			}
			for _, msg := range tt.dropped {
				assert.NotContains(t, out, `"message":"`+msg+`"`)
			}
		})
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "prune")

	logger.Info().Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "prune", entry["component"])
	assert.Equal(t, "loaded", entry["message"])
}

func TestNew_RunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Output: &buf, RunID: "run-123"})

	logger.Info().Msg("tagged")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-123", entry["run_id"])
}

func TestNew_PrettyOutputWithoutTerminalHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, Output: &buf})

	logger.Info().Str("rows", "3").Msg("Loaded table")

	out := buf.String()
	assert.Contains(t, out, "Loaded table")
	assert.Contains(t, out, "rows=3")
	assert.NotContains(t, out, "\x1b[")
}

func TestNew_NilOutput(t *testing.T) {
	logger := New(Config{Level: "disabled"})
	assert.NotPanics(t, func() { logger.Info().Msg("dropped") })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, os.Stderr, cfg.Output)
	_, err := uuid.Parse(cfg.RunID)
	assert.NoError(t, err)
	assert.NotEqual(t, cfg.RunID, DefaultConfig().RunID)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
