package port

import (
	"context"
	"errors"
)

// ErrPathEscapesBase is returned when a path resolves outside the storage root
var ErrPathEscapesBase = errors.New("path escapes base directory")

// ExportStorage stores rendered invoice artifacts
type ExportStorage interface {
	Save(ctx context.Context, relPath string, content []byte) (string, error)
	Read(ctx context.Context, relPath string) ([]byte, error)
	GetFullPath(relPath string) string
}
