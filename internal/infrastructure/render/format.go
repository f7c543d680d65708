package render

import (
	"fmt"
	"strings"
)

// Format identifies an output artifact type
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var formatInfo = map[Format]struct {
	contentType string
	extension   string
}{
	FormatHTML: {"text/html; charset=utf-8", ".html"},
	FormatPDF:  {"application/pdf", ".pdf"},
	FormatXLSX: {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
}

// ParseFormat accepts a format name or file extension, case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	if _, ok := formatInfo[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// String returns the string representation of the format
func (f Format) String() string {
	return string(f)
}

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	return formatInfo[f].contentType
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return formatInfo[f].extension
}
