package mocks

import (
	"image"
	"sync"

	"github.com/user/yuvsnap/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	SummaryJSON     []byte
	RawFrames       map[int][]byte
	ConvertedFrames map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:         enabled,
		RawFrames:       make(map[int][]byte),
		ConvertedFrames: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSummaryJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryJSON = data
	return nil
}

func (m *DebugSink) SaveRawFrame(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RawFrames[index] = data
	return nil
}

func (m *DebugSink) SaveConvertedFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConvertedFrames[index] = img
	return nil
}

// ConvertedCount returns the number of saved converted frames.
func (m *DebugSink) ConvertedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ConvertedFrames)
}

var _ ports.DebugSink = (*DebugSink)(nil)
