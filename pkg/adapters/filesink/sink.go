// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/yuvsnap/pkg/ports"
)

// Sink saves debug output under a base directory:
//
//	summary.json
//	frames/raw/frame-NNNN.yuv
//	frames/converted/frame-NNNN.png
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	encoder ports.ImageEncoder
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, encoder ports.ImageEncoder) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		encoder: encoder,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

func (s *Sink) SaveSummaryJSON(data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "summary.json"), data)
}

// SaveRawFrame saves the packed YUV bytes of a source frame.
func (s *Sink) SaveRawFrame(index int, data []byte) error {
	dir := filepath.Join(s.baseDir, "frames", "raw")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.yuv", index))
	return s.fs.WriteFile(path, data)
}

// SaveConvertedFrame saves a converted frame as PNG.
func (s *Sink) SaveConvertedFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames", "converted")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.encoder.Encode(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode converted frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
