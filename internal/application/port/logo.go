package port

import (
	"context"
	"io"
)

// LogoReader turns an uploaded image into the data URI stored on the invoice
type LogoReader interface {
	ReadDataURI(ctx context.Context, r io.Reader) (string, error)
}
