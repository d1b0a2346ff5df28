package ports

import (
	"fmt"
	"image"
	"strings"
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
	FormatBMP
	FormatTIFF
)

// Extension returns the file extension for the format, including the dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatBMP:
		return ".bmp"
	case FormatTIFF:
		return ".tiff"
	default:
		return ".png"
	}
}

// String returns the format name.
func (f ImageFormat) String() string {
	return strings.TrimPrefix(f.Extension(), ".")
}

// ParseImageFormat parses a format name or file extension.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return FormatPNG, fmt.Errorf("unknown image format: %q", s)
	}
}

// ImageEncoder abstracts still image encoding.
type ImageEncoder interface {
	// Encode encodes img in the given format. quality applies to lossy formats only.
	Encode(img image.Image, format ImageFormat, quality int) ([]byte, error)
}
