package ports

import "github.com/user/yuvsnap/pkg/yuv"

// FrameSource produces frame buffers one at a time.
type FrameSource interface {
	// Descriptor returns the metadata shared by every frame of the source.
	Descriptor() yuv.Descriptor

	// FrameRate returns the nominal frames per second, or 0 if unknown.
	FrameRate() float64

	// Next returns the next frame, or io.EOF when the source is exhausted.
	Next() (FrameBuffer, error)

	// Close releases source resources.
	Close() error
}
