package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		"empty defaults to warn": {input: "", want: zapcore.WarnLevel},
		"debug":                  {input: "debug", want: zapcore.DebugLevel},
		"info mixed case":        {input: " Info ", want: zapcore.InfoLevel},
		"warning alias":          {input: "warning", want: zapcore.WarnLevel},
		"error":                  {input: "error", want: zapcore.ErrorLevel},
		"invalid":                {input: "loud", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0, zapcore.WarnLevel))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1, zapcore.WarnLevel))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(1, zapcore.DebugLevel))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(3, zapcore.ErrorLevel))
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "info", JSON: true, Output: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("resolved authority", zap.String("class", "Child"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "resolved authority", entry["msg"])
	assert.Equal(t, "Child", entry["class"])
	assert.Equal(t, "info", entry["level"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("multiple inheritance", zap.String("class", "D"))

	out := buf.String()
	assert.Contains(t, out, "multiple inheritance")
	assert.Contains(t, out, `"class": "D"`)
	assert.NotContains(t, out, "hidden")
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
