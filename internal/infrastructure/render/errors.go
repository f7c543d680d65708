package render

import "errors"

var (
	// ErrUnknownFormat is returned for export formats without a renderer
	ErrUnknownFormat = errors.New("unknown render format")

	// ErrRenderFailed wraps failures inside a concrete renderer
	ErrRenderFailed = errors.New("render failed")
)
