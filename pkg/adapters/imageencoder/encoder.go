// Package imageencoder encodes converted frames into still image formats.
package imageencoder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/user/yuvsnap/pkg/ports"
)

// DefaultJPEGQuality is used when a non-positive quality is requested.
const DefaultJPEGQuality = 90

// Encoder implements ports.ImageEncoder.
type Encoder struct {
	png png.Encoder
}

// New creates a new Encoder. PNG output uses the default compression level
// unless fast is set.
func New(fast bool) *Encoder {
	e := &Encoder{}
	if fast {
		e.png.CompressionLevel = png.BestSpeed
	}
	return e
}

// Encode encodes an image to the specified format.
func (e *Encoder) Encode(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("encode %s: nil image", format)
	}

	var buf bytes.Buffer
	switch format {
	case ports.FormatPNG:
		if err := e.png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode BMP: %w", err)
		}
	case ports.FormatTIFF:
		if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
			return nil, fmt.Errorf("encode TIFF: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// Decode decodes data in the given format. It is used to read back snapshots.
func Decode(data []byte, format ports.ImageFormat) (image.Image, error) {
	r := bytes.NewReader(data)
	switch format {
	case ports.FormatPNG:
		return png.Decode(r)
	case ports.FormatJPEG:
		return jpeg.Decode(r)
	case ports.FormatBMP:
		return bmp.Decode(r)
	case ports.FormatTIFF:
		return tiff.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}
}

// Ensure Encoder implements ports.ImageEncoder
var _ ports.ImageEncoder = (*Encoder)(nil)
