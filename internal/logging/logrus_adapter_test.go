package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{"debug text", "debug", "text", logrus.DebugLevel, false},
		{"info json", "info", "json", logrus.InfoLevel, true},
		{"upper case level", "WARN", "text", logrus.WarnLevel, false},
		{"invalid level defaults to info", "loud", "text", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogrusLogger(tt.level, tt.format, &buf)

			assert.Equal(t, tt.expectLevel, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	existing := logrus.New()
	adapter, ok := NewLogrusAdapterFromLogger(existing).(*LogrusAdapter)
	require.True(t, ok)
	assert.Same(t, existing, adapter.Logrus())

	fresh, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, fresh.Logrus())
}

func newBufferedAdapter(level string) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewLogrusLogger(level, "text", &buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(logger), &buf
}

func TestLogrusAdapter_Levels(t *testing.T) {
	logger, buf := newBufferedAdapter("info")

	logger.Debug("hidden")
	logger.Info("import finished", F(FieldCount, 3))
	logger.Warn("row skipped", F(FieldReason, "zero_amount"))
	logger.Error("store failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "import finished")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "reason=zero_amount")
	assert.Contains(t, out, "store failed")
}

func TestLogrusAdapter_DerivedLoggers(t *testing.T) {
	logger, buf := newBufferedAdapter("debug")

	logger.WithError(errors.New("boom")).
		WithField(FieldParser, "csv").
		WithFields(F(FieldLine, 4)).
		Error("parse failed")

	out := buf.String()
	assert.Contains(t, out, "parse failed")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "parser=csv")
	assert.Contains(t, out, "line=4")
}
