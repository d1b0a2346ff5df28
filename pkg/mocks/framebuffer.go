package mocks

import (
	"sync"

	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

// FrameBuffer is a mock implementation of ports.FrameBuffer that records lock calls.
type FrameBuffer struct {
	Desc   yuv.Descriptor
	Planes []yuv.Plane

	LockFunc func() ([]yuv.Plane, error)

	mu      sync.Mutex
	locked  bool
	locks   int
	unlocks int
}

func (m *FrameBuffer) Descriptor() yuv.Descriptor {
	return m.Desc
}

func (m *FrameBuffer) Lock() ([]yuv.Plane, error) {
	if m.LockFunc != nil {
		planes, err := m.LockFunc()
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.locked = true
		m.locks++
		m.mu.Unlock()
		return planes, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = true
	m.locks++
	return m.Planes, nil
}

func (m *FrameBuffer) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = false
	m.unlocks++
}

// Locked reports whether the last Lock has not been released.
func (m *FrameBuffer) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

// LockCalls returns the number of successful Lock calls.
func (m *FrameBuffer) LockCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks
}

// UnlockCalls returns the number of Unlock calls.
func (m *FrameBuffer) UnlockCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unlocks
}

var _ ports.FrameBuffer = (*FrameBuffer)(nil)
