package mocks

import (
	"context"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/ports"
)

// VideoDecoder is a mock implementation of ports.VideoDecoder and ports.ContainerProbe
// serving a fixed frame list.
type VideoDecoder struct {
	Frames []framecodec.Frame

	ReadFramesFunc func(ctx context.Context, path string, width, height int, fn func(ports.VideoFrame) error) error
	ProbeFunc      func(ctx context.Context, path string) (ports.ProbeResult, error)

	// Recorded calls for verification
	ReadPaths  []string
	ProbePaths []string
}

func (m *VideoDecoder) ReadFrames(ctx context.Context, path string, width, height int, fn func(ports.VideoFrame) error) error {
	m.ReadPaths = append(m.ReadPaths, path)
	if m.ReadFramesFunc != nil {
		return m.ReadFramesFunc(ctx, path, width, height, fn)
	}
	for i, f := range m.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ports.VideoFrame{Index: i, Image: f}); err != nil {
			return err
		}
	}
	return nil
}

func (m *VideoDecoder) Probe(ctx context.Context, path string) (ports.ProbeResult, error) {
	m.ProbePaths = append(m.ProbePaths, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	res := ports.ProbeResult{FrameCount: len(m.Frames), Codec: "mock"}
	if len(m.Frames) > 0 {
		res.Width, res.Height = m.Frames[0].Width, m.Frames[0].Height
	}
	return res, nil
}

var (
	_ ports.VideoDecoder   = (*VideoDecoder)(nil)
	_ ports.ContainerProbe = (*VideoDecoder)(nil)
)
