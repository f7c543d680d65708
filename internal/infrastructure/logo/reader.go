// Package logo turns an uploaded image file into the opaque data URI string
// stored on the invoice. It is the only place that looks inside the image.
package logo

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// DefaultMaxBytes bounds the size of an accepted logo
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// Reader reads image files into data URIs
type Reader struct {
	maxBytes int64
	logger   *zap.Logger
}

// NewReader creates a Reader. maxBytes <= 0 selects DefaultMaxBytes.
func NewReader(maxBytes int64, logger *zap.Logger) *Reader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// ReadDataURI reads r fully and returns "data:<mime>;base64,<payload>"
func (lr *Reader) ReadDataURI(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// one extra byte tells an exact-limit file apart from an oversized one
	data, err := io.ReadAll(io.LimitReader(r, lr.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}
	if int64(len(data)) > lr.maxBytes {
		return "", fmt.Errorf("%w: limit %d bytes", ErrTooLarge, lr.maxBytes)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		lr.logger.Warn("Rejected non-image logo",
			zap.String("mime", mime.String()),
			zap.Int("size", len(data)))
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}

	lr.logger.Debug("Logo encoded",
		zap.String("mime", mime.String()),
		zap.Int("size", len(data)))

	return Encode(mimeType(mime), data), nil
}

// ReadFile reads the image at path into a data URI
func (lr *Reader) ReadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open logo: %w", err)
	}
	defer f.Close()

	return lr.ReadDataURI(ctx, f)
}

// mimeType strips parameters such as "; charset=utf-8" from SVG detections
func mimeType(m *mimetype.MIME) string {
	s := m.String()
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// Encode builds a base64 data URI
func Encode(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a base64 data URI into its MIME type and raw bytes
func Decode(dataURI string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}

	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mime, data, nil
}

// IsImageDataURI reports whether s looks like a base64 image data URI
func IsImageDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}
