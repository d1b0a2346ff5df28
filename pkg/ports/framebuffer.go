package ports

import "github.com/user/yuvsnap/pkg/yuv"

// FrameBuffer is a read-only handle to one captured YUV frame.
//
// Plane slices returned by Lock are only valid until Unlock. Callers must not
// write through them or keep them after Unlock.
type FrameBuffer interface {
	// Descriptor returns the frame metadata. It does not require the buffer to be locked.
	Descriptor() yuv.Descriptor

	// Lock maps the planes for reading.
	Lock() ([]yuv.Plane, error)

	// Unlock releases the mapping obtained by Lock.
	Unlock()
}
