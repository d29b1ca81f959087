// Package extract implements the frame extraction stage.
package extract

import (
	"context"
	"fmt"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/pipeline"
	"github.com/user/bytereel/pkg/ports"
)

// Stage reads packed frames back from an encoded video.
type Stage struct {
	decoder ports.VideoDecoder
	probe   ports.ContainerProbe
	logger  ports.Logger
}

// NewStage creates a new extract stage. probe may be nil to skip the
// container check.
func NewStage(decoder ports.VideoDecoder, probe ports.ContainerProbe, logger ports.Logger) *Stage {
	return &Stage{
		decoder: decoder,
		probe:   probe,
		logger:  logger.WithComponent("extract"),
	}
}

// Execute decodes every frame of input.VideoPath at the recorded geometry.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{Probe: ports.ProbeResult{FrameCount: -1}}
	meta := input.Metadata
	if err := meta.Validate(); err != nil {
		return result, err
	}
	expected := meta.FrameCount()

	if s.probe != nil {
		probe, err := s.probe.Probe(ctx, input.VideoPath)
		if err != nil {
			return result, fmt.Errorf("probe %s: %w", input.VideoPath, err)
		}
		result.Probe = probe
		s.logger.Debug("Probed %s: %dx%d, %d frames, codec %s",
			input.VideoPath, probe.Width, probe.Height, probe.FrameCount, probe.Codec)

		if probe.Width != meta.Width || probe.Height != meta.Height {
			return result, fmt.Errorf("%w: video is %dx%d, token records %dx%d",
				framecodec.ErrGeometryMismatch, probe.Width, probe.Height, meta.Width, meta.Height)
		}
		if probe.FrameCount >= 0 && probe.FrameCount < expected {
			return result, fmt.Errorf("%w: video has %d frames, expected %d",
				framecodec.ErrTruncatedInput, probe.FrameCount, expected)
		}
	}

	frames := make([]framecodec.Frame, 0, expected)
	err := s.decoder.ReadFrames(ctx, input.VideoPath, meta.Width, meta.Height, func(vf ports.VideoFrame) error {
		if vf.Index != len(frames) {
			return fmt.Errorf("%w: frame %d arrived at position %d",
				framecodec.ErrTruncatedInput, vf.Index, len(frames))
		}
		f, err := framecodec.FromImage(vf.Image)
		if err != nil {
			return fmt.Errorf("frame %d: %w", vf.Index, err)
		}
		frames = append(frames, f)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("read frames: %w", err)
	}

	s.logger.Debug("Extracted %d frames (expected %d)", len(frames), expected)
	result.Frames = frames
	return result, nil
}
