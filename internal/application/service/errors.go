package service

import "errors"

var (
	// ErrLogoRejected is returned when an upload cannot be used as a logo.
	// The document is left unchanged.
	ErrLogoRejected = errors.New("logo rejected")

	// ErrExportFailed wraps storage failures during export
	ErrExportFailed = errors.New("export failed")
)
