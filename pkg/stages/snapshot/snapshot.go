// Package snapshot writes converted frames as still image files.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/user/yuvsnap/pkg/pipeline"
	"github.com/user/yuvsnap/pkg/ports"
)

// Stage encodes frames and writes one file per frame.
type Stage struct {
	encoder ports.ImageEncoder
	fs      ports.FileSystem
	logger  ports.Logger
}

// NewStage creates a new snapshot stage.
func NewStage(encoder ports.ImageEncoder, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		fs:      fs,
		logger:  logger.WithComponent("snapshot"),
	}
}

// FileName returns the file name for frame index, e.g. frame-0007.png.
func FileName(pattern string, index int, format ports.ImageFormat) string {
	if pattern == "" {
		pattern = pipeline.DefaultSnapshotPattern
	}
	return fmt.Sprintf(pattern, index) + format.Extension()
}

// Execute writes every frame. The first encode or write error stops the stage.
func (s *Stage) Execute(ctx context.Context, input pipeline.SnapshotInput) (pipeline.SnapshotResult, error) {
	result := pipeline.SnapshotResult{Paths: make([]string, 0, len(input.Frames))}
	if len(input.Frames) == 0 {
		return result, nil
	}
	if err := pipeline.ValidateSnapshotPattern(input.Pattern); err != nil {
		return result, err
	}

	if input.Dir != "" {
		if err := s.fs.MkdirAll(input.Dir); err != nil {
			return result, fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	s.logger.Debug("Writing %d %s snapshots to %s", len(input.Frames), input.Format, input.Dir)

	for _, frame := range input.Frames {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var img image.Image = frame.Image
		if input.Mirror {
			img = Mirror(frame.Image)
		}

		data, err := s.encoder.Encode(img, input.Format, input.Quality)
		if err != nil {
			return result, fmt.Errorf("encode frame %d: %w", frame.Index, err)
		}

		path := filepath.Join(input.Dir, FileName(input.Pattern, frame.Index, input.Format))
		if err := s.fs.WriteFile(path, data); err != nil {
			return result, fmt.Errorf("write %s: %w", path, err)
		}

		result.Paths = append(result.Paths, path)
		result.BytesWritten += int64(len(data))
	}

	s.logger.Debug("Wrote %d bytes", result.BytesWritten)
	return result, nil
}

// Mirror returns a horizontally flipped copy of img. img is not modified.
func Mirror(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	flip := f64.Aff3{
		-1, 0, float64(b.Max.X),
		0, 1, float64(-b.Min.Y),
	}
	draw.NearestNeighbor.Transform(dst, flip, img, b, draw.Src, nil)
	return dst
}
