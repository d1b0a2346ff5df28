package mocks

import (
	"image"
	"sync"

	"github.com/user/yuvsnap/pkg/ports"
)

// ImageEncoder is a mock implementation of ports.ImageEncoder.
type ImageEncoder struct {
	mu sync.Mutex

	EncodeFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	Calls []ports.ImageFormat
}

func (m *ImageEncoder) Encode(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, format)
	m.mu.Unlock()

	if m.EncodeFunc != nil {
		return m.EncodeFunc(img, format, quality)
	}
	return []byte(format.String()), nil
}

// CallCount returns the number of Encode calls.
func (m *ImageEncoder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ ports.ImageEncoder = (*ImageEncoder)(nil)
