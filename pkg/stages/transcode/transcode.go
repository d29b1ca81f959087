// Package transcode implements the lossless video encoding stage.
package transcode

import (
	"context"
	"fmt"
	"time"

	"github.com/user/bytereel/pkg/pipeline"
	"github.com/user/bytereel/pkg/ports"
)

// Stage writes packed frames to a lossless video.
type Stage struct {
	encoder ports.VideoEncoder
	logger  ports.Logger
}

// NewStage creates a new transcode stage.
func NewStage(encoder ports.VideoEncoder, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("transcode"),
	}
}

// Execute encodes all frames into input.OutputPath.
// On any failure the encoder is aborted so no partial output is left behind.
func (s *Stage) Execute(ctx context.Context, input pipeline.TranscodeInput) (result pipeline.TranscodeResult, err error) {
	if len(input.Frames) == 0 {
		return result, fmt.Errorf("no frames to encode")
	}
	if input.FPS <= 0 {
		return result, fmt.Errorf("invalid frame rate %v", input.FPS)
	}

	// Get dimensions from first frame
	width := input.Frames[0].Width
	height := input.Frames[0].Height

	s.logger.Debug("Encoding %d frames at %dx%d with %s", len(input.Frames), width, height, input.Options.Codec)

	if err := s.encoder.Begin(input.OutputPath, width, height, input.FPS, input.Options); err != nil {
		return result, fmt.Errorf("begin encoding: %w", err)
	}

	ended := false
	defer func() {
		if err != nil && !ended {
			s.encoder.Abort()
		}
	}()

	// Encode each frame
	for i, frame := range input.Frames {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.encoder.EncodeFrame(frame); err != nil {
			return result, fmt.Errorf("encode frame %d: %w", i, err)
		}
	}

	// Finalize encoding
	size, err := s.encoder.End()
	ended = true
	if err != nil {
		return result, fmt.Errorf("end encoding: %w", err)
	}

	result.OutputPath = input.OutputPath
	result.FrameCount = len(input.Frames)
	result.FileSize = size
	result.Duration = time.Duration(float64(len(input.Frames)) / input.FPS * float64(time.Second))

	s.logger.Debug("Encoded %s (%d bytes)", input.OutputPath, size)
	return result, nil
}
