package mocks

import (
	"image"
	"sync"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
// Frames passed to EncodeFrame are kept so tests can decode them again.
type VideoEncoder struct {
	BeginFunc       func(outputPath string, width, height int, fps float64, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image) error
	EndFunc         func() (int64, error)

	mu sync.Mutex

	// Recorded calls for verification
	BeginCalled bool
	OutputPath  string
	Width       int
	Height      int
	FPS         float64
	Options     ports.EncoderOptions
	Frames      []framecodec.Frame
	EndCalled   bool
	Aborted     bool
}

func (m *VideoEncoder) Begin(outputPath string, width, height int, fps float64, opts ports.EncoderOptions) error {
	m.mu.Lock()
	m.BeginCalled = true
	m.OutputPath = outputPath
	m.Width, m.Height, m.FPS, m.Options = width, height, fps, opts
	m.Frames = nil
	m.mu.Unlock()
	if m.BeginFunc != nil {
		return m.BeginFunc(outputPath, width, height, fps, opts)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image) error {
	if m.EncodeFrameFunc != nil {
		if err := m.EncodeFrameFunc(img); err != nil {
			return err
		}
	}
	f, err := framecodec.FromImage(img)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.Frames = append(m.Frames, f)
	m.mu.Unlock()
	return nil
}

func (m *VideoEncoder) End() (int64, error) {
	m.mu.Lock()
	m.EndCalled = true
	n := int64(0)
	for _, f := range m.Frames {
		n += int64(len(f.Pix))
	}
	m.mu.Unlock()
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return n, nil
}

func (m *VideoEncoder) Abort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Aborted = true
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
