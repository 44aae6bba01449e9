package pantryassistant

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newZapLogger(LogConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", zap.String("path", "/health"))
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "/health", line["path"])
}

func TestNewSlogLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LogConfig
		wantOut bool
		wantTxt string
	}{
		{name: "json info", cfg: LogConfig{Level: "info"}, wantOut: true, wantTxt: `"msg":"hello"`},
		{name: "console", cfg: LogConfig{Level: "debug", Format: "console"}, wantOut: true, wantTxt: "msg=hello"},
		{name: "filtered", cfg: LogConfig{Level: "error"}, wantOut: false},
		{name: "bad level falls back to info", cfg: LogConfig{Level: "loud"}, wantOut: true, wantTxt: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewSlogLogger(tt.cfg, &buf).Info("hello")
			if !tt.wantOut {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.wantTxt)
		})
	}
}
