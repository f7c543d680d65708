package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garyjia/rental-invoice/internal/application/port"
)

func TestLocalFileStorage_Save(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	fs := NewLocalFileStorage(tempDir, logger)
	ctx := context.Background()

	t.Run("saves file successfully", func(t *testing.T) {
		content := []byte("%PDF-1.3 content")

		fullPath, err := fs.Save(ctx, "INV-001.pdf", content)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tempDir, "INV-001.pdf"), fullPath)
		saved, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, content, saved)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		fullPath, err := fs.Save(ctx, filepath.Join("2024", "01", "INV-002.xlsx"), []byte("xlsx"))

		require.NoError(t, err)
		assert.FileExists(t, fullPath)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		_, err := fs.Save(ctx, "overwrite.html", []byte("original"))
		require.NoError(t, err)
		_, err = fs.Save(ctx, "overwrite.html", []byte("updated"))
		require.NoError(t, err)

		content, err := fs.Read(ctx, "overwrite.html")
		require.NoError(t, err)
		assert.Equal(t, []byte("updated"), content)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		_, err := fs.Save(ctx, filepath.Join("..", "..", "etc", "passwd"), []byte("x"))

		assert.ErrorIs(t, err, port.ErrPathEscapesBase)
	})

	t.Run("rejects the base directory itself", func(t *testing.T) {
		_, err := fs.Save(ctx, "", []byte("x"))

		assert.ErrorIs(t, err, port.ErrPathEscapesBase)
	})
}

func TestLocalFileStorage_LogsWrites(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fs := NewLocalFileStorage(t.TempDir(), zap.New(core))

	_, err := fs.Save(context.Background(), "INV-001.html", []byte("<html></html>"))
	require.NoError(t, err)

	entries := logs.FilterMessage("Export saved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(13), entries[0].ContextMap()["size"])
}

func TestLocalFileStorage_CancelledContext(t *testing.T) {
	fs := NewLocalFileStorage(t.TempDir(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.Save(ctx, "INV-001.pdf", []byte("x"))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalFileStorage_Read(t *testing.T) {
	fs := NewLocalFileStorage(t.TempDir(), zap.NewNop())

	_, err := fs.Read(context.Background(), "missing.pdf")
	assert.Error(t, err)

	_, err = fs.Read(context.Background(), "../outside.pdf")
	assert.ErrorIs(t, err, port.ErrPathEscapesBase)
}

func TestExportName(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		invoiceNumber string
		want          string
	}{
		{"plain number", "INV-001", "INV-001_20240115-103000.pdf"},
		{"strips separators", "../INV/7", "INV7_20240115-103000.pdf"},
		{"strips spaces and symbols", "INV #12 (draft)", "INV12draft_20240115-103000.pdf"},
		{"empty falls back", "", "invoice_20240115-103000.pdf"},
		{"only unsafe chars", "///", "invoice_20240115-103000.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportName(tt.invoiceNumber, ".pdf", at))
		})
	}
}
