// Package memframe provides an in-memory frame buffer.
package memframe

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/user/yuvsnap/pkg/converter"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

// ErrAlreadyLocked is returned by Lock while a previous lock is held.
var ErrAlreadyLocked = errors.New("frame buffer already locked")

// Buffer is a FrameBuffer backed by Go byte slices.
type Buffer struct {
	mu        sync.Mutex
	desc      yuv.Descriptor
	planes    []yuv.Plane
	locked    bool
	lockCount int
}

// New wraps existing planes. The planes are not copied.
func New(d yuv.Descriptor, planes []yuv.Plane) *Buffer {
	return &Buffer{desc: d, planes: planes}
}

// FromBytes splits a tightly packed frame (no row padding) into planes.
func FromBytes(d yuv.Descriptor, data []byte) (*Buffer, error) {
	layout, ok := d.Format.Layout()
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", d.Format)
	}
	if err := d.ValidateSize(); err != nil {
		return nil, err
	}
	if size := d.FrameSize(); len(data) < size {
		return nil, fmt.Errorf("frame length (%d) less than expected (%d)", len(data), size)
	}

	planes := make([]yuv.Plane, layout.Planes)
	offset := 0
	for i := range planes {
		rowBytes, rows := d.PlaneGeometry(i)
		n := rowBytes * rows
		planes[i] = yuv.Plane{Data: data[offset : offset+n : offset+n], Stride: rowBytes}
		offset += n
	}
	return New(d, planes), nil
}

// Alloc allocates zeroed planes with rows padded to a multiple of align bytes.
func Alloc(d yuv.Descriptor, align int) (*Buffer, error) {
	layout, ok := d.Format.Layout()
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", d.Format)
	}
	if err := d.ValidateSize(); err != nil {
		return nil, err
	}

	planes := make([]yuv.Plane, layout.Planes)
	for i := range planes {
		rowBytes, rows := d.PlaneGeometry(i)
		stride := yuv.AlignStride(rowBytes, align)
		planes[i] = yuv.Plane{Data: make([]byte, stride*rows), Stride: stride}
	}
	return New(d, planes), nil
}

// FromImage packs img into a new buffer described by d.
func FromImage(img image.Image, d yuv.Descriptor, align int) (*Buffer, error) {
	planes, err := converter.Pack(img, d, align)
	if err != nil {
		return nil, err
	}
	return New(d, planes), nil
}

// Descriptor returns the frame metadata.
func (b *Buffer) Descriptor() yuv.Descriptor {
	return b.desc
}

// Lock hands out views of the planes until Unlock is called. Views are capped
// to their plane so they cannot grow into the next one; the bytes themselves
// are shared and must not be written.
func (b *Buffer) Lock() ([]yuv.Plane, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.locked {
		return nil, ErrAlreadyLocked
	}
	b.locked = true
	b.lockCount++

	views := make([]yuv.Plane, len(b.planes))
	for i, p := range b.planes {
		views[i] = yuv.Plane{Data: p.Data[:len(p.Data):len(p.Data)], Stride: p.Stride}
	}
	return views, nil
}

// Unlock releases the lock. Unlocking an unlocked buffer is a no-op.
func (b *Buffer) Unlock() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.locked = false
}

// Locked reports whether the buffer is currently locked.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// LockCount returns how many times Lock has succeeded.
func (b *Buffer) LockCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lockCount
}

// Planes returns the backing planes for writers that fill the buffer.
func (b *Buffer) Planes() []yuv.Plane {
	return b.planes
}

// Bytes returns a tightly packed copy of the frame with row padding removed.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, b.desc.FrameSize())
	for i, p := range b.planes {
		rowBytes, rows := b.desc.PlaneGeometry(i)
		for y := 0; y < rows; y++ {
			start := y * p.Stride
			out = append(out, p.Data[start:start+rowBytes]...)
		}
	}
	return out
}

// Ensure Buffer implements ports.FrameBuffer
var _ ports.FrameBuffer = (*Buffer)(nil)
