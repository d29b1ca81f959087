package mocks

import (
	"image"
	"sync"

	"github.com/user/bytereel/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu sync.RWMutex

	enabled bool

	Frames   map[int]image.Image
	Manifest []byte
}

// NewFrameSink creates a new mock FrameSink.
func NewFrameSink(enabled bool) *FrameSink {
	return &FrameSink{
		enabled: enabled,
		Frames:  make(map[int]image.Image),
	}
}

func (m *FrameSink) Enabled() bool {
	return m.enabled
}

func (m *FrameSink) SaveFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return nil
}

func (m *FrameSink) SaveManifest(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Manifest = data
	return nil
}

// FrameCount returns the number of saved frames.
func (m *FrameSink) FrameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Frames)
}

var _ ports.FrameSink = (*FrameSink)(nil)
