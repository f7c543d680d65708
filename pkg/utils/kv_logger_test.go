package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestKVLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewKVLogger(zap.New(core))

	logger.Info("Invoice exported", "format", "pdf", "size", 42)
	logger.Error("Failed to save export", "error", errors.New("disk full"))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Invoice exported", entries[0].Message)
	assert.Equal(t, "pdf", entries[0].ContextMap()["format"])
	assert.Equal(t, int64(42), entries[0].ContextMap()["size"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "disk full", entries[1].ContextMap()["error"])
}

func TestNewKVLogger_Nil(t *testing.T) {
	logger := NewKVLogger(nil)

	assert.NotPanics(t, func() {
		logger.Info("ignored", "key", "value")
		logger.Error("ignored")
	})
}
