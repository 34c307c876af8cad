package types

import (
	"fmt"
	"strings"
)

// Format is an output document encoding
type Format string

// Supported output formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Media types for the supported formats
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ParseFormat parses a case-insensitive format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	}
	return "", fmt.Errorf("unsupported format %q (want pdf or docx)", s)
}

// Extension returns the file extension without the dot
func (f Format) Extension() string {
	return string(f)
}

// MediaType returns the MIME type of f
func (f Format) MediaType() string {
	if f == FormatDOCX {
		return MediaTypeDOCX
	}
	return MediaTypePDF
}
