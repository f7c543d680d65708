package logo

import "errors"

var (
	// ErrNotImage is returned when the uploaded content is not an image
	ErrNotImage = errors.New("logo is not an image")

	// ErrTooLarge is returned when the upload exceeds the configured limit
	ErrTooLarge = errors.New("logo exceeds maximum size")

	// ErrEmpty is returned for zero-length uploads
	ErrEmpty = errors.New("logo file is empty")

	// ErrInvalidDataURI is returned by Decode for malformed data URIs
	ErrInvalidDataURI = errors.New("invalid image data URI")
)
