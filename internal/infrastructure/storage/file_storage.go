// internal/infrastructure/storage/file_storage.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/rental-invoice/internal/application/port"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// LocalFileStorage writes exported invoice artifacts under a base directory
type LocalFileStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalFileStorage creates a new LocalFileStorage
func NewLocalFileStorage(baseDir string, logger *zap.Logger) port.ExportStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalFileStorage{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Save writes content to a path relative to the base directory and
// returns the full path written
func (s *LocalFileStorage) Save(ctx context.Context, relPath string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := s.GetFullPath(relPath)
	if err := s.validatePath(fullPath); err != nil {
		return "", err
	}

	parentDir := filepath.Dir(fullPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		s.logger.Error("Failed to create parent directories",
			zap.String("path", parentDir),
			zap.Error(err))
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write file",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Export saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return fullPath, nil
}

// Read returns the content of a previously saved export
func (s *LocalFileStorage) Read(ctx context.Context, relPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath := s.GetFullPath(relPath)
	if err := s.validatePath(fullPath); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// GetFullPath joins relPath onto the base directory
func (s *LocalFileStorage) GetFullPath(relPath string) string {
	return filepath.Join(s.baseDir, relPath)
}

// ExportName builds a filesystem-safe file name such as
// "INV-001_20240115-103000.pdf" for an export of the given invoice number
func ExportName(invoiceNumber, extension string, at time.Time) string {
	name := strings.ReplaceAll(invoiceNumber, "..", "")
	name = unsafeNameChars.ReplaceAllString(name, "")
	if name == "" {
		name = "invoice"
	}
	return fmt.Sprintf("%s_%s%s", name, at.Format("20060102-150405"), extension)
}

// validatePath checks that the path is within baseDir
func (s *LocalFileStorage) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", port.ErrPathEscapesBase, fullPath)
	}

	return nil
}
