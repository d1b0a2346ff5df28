package pipeline

import (
	"image"

	"github.com/user/yuvsnap/pkg/ports"
)

// =============================================================================
// Batch Stage Types
// =============================================================================

// BatchInput is a set of frames to convert.
type BatchInput struct {
	Frames []ports.FrameBuffer
	// FirstIndex is the sequence number of Frames[0] within the source.
	FirstIndex int
	// Step is the distance in source frames between consecutive entries (default: 1).
	Step int
}

// IndexOf returns the source sequence number of Frames[i].
func (b BatchInput) IndexOf(i int) int {
	step := b.Step
	if step <= 0 {
		step = 1
	}
	return b.FirstIndex + i*step
}

// BatchResult holds the frames that converted successfully, in input order.
type BatchResult struct {
	Frames  []ConvertedFrame
	Dropped []DroppedFrame
}

// ConvertedFrame is one converted bitmap and its position in the source.
type ConvertedFrame struct {
	Index int
	Image *image.RGBA
}

// DroppedFrame records a frame that failed to convert.
type DroppedFrame struct {
	Index int
	Err   error
}

// =============================================================================
// Snapshot Stage Types
// =============================================================================

// SnapshotInput contains frames to write as still images.
type SnapshotInput struct {
	Frames  []ConvertedFrame
	Dir     string
	Pattern string // fmt pattern taking the frame index (default: "frame-%04d")
	Format  ports.ImageFormat
	Quality int
	Mirror  bool // Flip each frame horizontally before encoding
}

// DefaultSnapshotPattern is the default file name pattern, without extension.
const DefaultSnapshotPattern = "frame-%04d"

// SnapshotResult lists the written files.
type SnapshotResult struct {
	Paths        []string
	BytesWritten int64
}

// =============================================================================
// GIF Stage Types
// =============================================================================

// GIFOptions controls how frames are turned into animation frames.
type GIFOptions struct {
	FrameRate float64
	MaxWidth  int // Frames wider than this are scaled down; 0 keeps the size
	Dither    bool
}

// GIFInput contains frames to assemble into an animation in one call.
type GIFInput struct {
	Frames    []ConvertedFrame
	FrameRate float64
	MaxWidth  int
	Dither    bool
}

// Options returns the encoding options of the input.
func (in GIFInput) Options() GIFOptions {
	return GIFOptions{FrameRate: in.FrameRate, MaxWidth: in.MaxWidth, Dither: in.Dither}
}

// GIFAnimation receives converted frames chunk by chunk.
type GIFAnimation = Accumulator[[]ConvertedFrame, GIFResult]

// GIFStarter begins a new incremental animation.
type GIFStarter interface {
	Start(opts GIFOptions) GIFAnimation
}

// DefaultGIFInput returns GIFInput with default values.
func DefaultGIFInput() GIFInput {
	return GIFInput{
		FrameRate: 10,
		MaxWidth:  480,
		Dither:    true,
	}
}

// GIFResult contains the encoded animation.
type GIFResult struct {
	Data       []byte
	Frames     int
	DurationMs int
}
