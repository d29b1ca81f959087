// Package unpack implements the frame-to-byte reassembly stage.
package unpack

import (
	"context"
	"fmt"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/pipeline"
	"github.com/user/bytereel/pkg/ports"
)

// Stage concatenates frame payloads and truncates them to the recorded size.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new unpack stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("unpack"),
	}
}

// Execute writes the original bytes to input.Output.
func (s *Stage) Execute(ctx context.Context, input pipeline.UnpackInput) (pipeline.UnpackResult, error) {
	result := pipeline.UnpackResult{}
	if input.Output == nil {
		return result, fmt.Errorf("no output writer")
	}

	a, err := framecodec.NewAssembler(input.Output, input.Metadata)
	if err != nil {
		return result, err
	}

	for _, f := range input.Frames {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		if err := a.Add(f); err != nil {
			return result, err
		}
	}

	n, err := a.Close()
	result.BytesWritten = n
	result.FrameCount = a.Frames()
	result.SurplusFrames = a.SurplusFrames()
	if err != nil {
		return result, err
	}

	if result.SurplusFrames > 0 {
		s.logger.Warn("Ignored %d trailing frames beyond the recorded size", result.SurplusFrames)
	}
	s.logger.Debug("Reassembled %d bytes from %d frames", n, result.FrameCount)
	return result, nil
}
